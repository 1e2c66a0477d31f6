package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"agriteranga-courier/internal/apperr"
	"agriteranga-courier/internal/domain"
	"agriteranga-courier/internal/logx"
)

// Doer executes a single HTTP request. *http.Client satisfies it, as does
// the RetryingDoer decorator.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is the gateway to the AgriTeranga courier REST backend.
type Client struct {
	doer    Doer
	baseURL string
	token   string
	logger  logx.Logger
}

// NewClient creates a backend gateway. baseURL must not end with a slash.
func NewClient(doer Doer, baseURL, token string, logger logx.Logger) *Client {
	if doer == nil {
		return nil
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Client{
		doer:    doer,
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		logger:  logger,
	}
}

const bodyLimit = 4 << 20

// Stats fetches the courier's aggregate delivery counters.
func (c *Client) Stats(ctx context.Context) (domain.DeliveryStats, error) {
	body, err := c.call(ctx, http.MethodGet, "/courier/stats", nil, nil)
	if err != nil {
		return domain.DeliveryStats{}, fmt.Errorf("backend gateway: stats: %w", err)
	}
	raw := parseObject(body, "stats")
	if raw == nil {
		c.logger.Warn("stats response shape unrecognized")
		return domain.DeliveryStats{}, nil
	}
	var dto statsDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return domain.DeliveryStats{}, fmt.Errorf("backend gateway: stats decode: %w", err)
	}
	return dto.toDomain(), nil
}

// ListAvailable fetches a page of open orders offered to couriers.
func (c *Client) ListAvailable(ctx context.Context, page, pageSize int, _ domain.AvailableFilters) ([]domain.AvailableDelivery, domain.Pagination, error) {
	q := pageQuery(page, pageSize)
	body, err := c.call(ctx, http.MethodGet, "/courier/orders/available", q, nil)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("backend gateway: list available: %w", err)
	}
	res := parseList(body, "orders", "data")
	if !res.Recognized {
		c.logger.Warn("available response shape unrecognized")
		return []domain.AvailableDelivery{}, domain.Pagination{Page: page, TotalPages: 1}, nil
	}
	out := make([]domain.AvailableDelivery, 0, len(res.Items))
	for _, raw := range res.Items {
		var dto orderDTO
		if err := json.Unmarshal(raw, &dto); err != nil {
			c.logger.Warn("skipping malformed order", logx.Any("err", err))
			continue
		}
		out = append(out, dto.toAvailable())
	}
	return out, res.Pagination, nil
}

// ListMine fetches a page of deliveries assigned to the courier.
func (c *Client) ListMine(ctx context.Context, page, pageSize int, f domain.MineFilters) ([]domain.MyDelivery, domain.Pagination, error) {
	q := pageQuery(page, pageSize)
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	body, err := c.call(ctx, http.MethodGet, "/courier/deliveries", q, nil)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("backend gateway: list mine: %w", err)
	}
	res := parseList(body, "deliveries", "data")
	if !res.Recognized {
		c.logger.Warn("deliveries response shape unrecognized")
		return []domain.MyDelivery{}, domain.Pagination{Page: page, TotalPages: 1}, nil
	}
	out := make([]domain.MyDelivery, 0, len(res.Items))
	for _, raw := range res.Items {
		var dto deliveryDTO
		if err := json.Unmarshal(raw, &dto); err != nil {
			c.logger.Warn("skipping malformed delivery", logx.Any("err", err))
			continue
		}
		out = append(out, dto.toMine())
	}
	return out, res.Pagination, nil
}

// ListHistory fetches a page of terminal deliveries.
func (c *Client) ListHistory(ctx context.Context, page, pageSize int, f domain.HistoryFilters) ([]domain.HistoryEntry, domain.Pagination, error) {
	q := pageQuery(page, pageSize)
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.DateFrom != "" {
		q.Set("dateFrom", f.DateFrom)
	}
	if f.DateTo != "" {
		q.Set("dateTo", f.DateTo)
	}
	body, err := c.call(ctx, http.MethodGet, "/courier/deliveries/history", q, nil)
	if err != nil {
		return nil, domain.Pagination{}, fmt.Errorf("backend gateway: list history: %w", err)
	}
	res := parseList(body, "deliveries", "history", "data")
	if !res.Recognized {
		c.logger.Warn("history response shape unrecognized")
		return []domain.HistoryEntry{}, domain.Pagination{Page: page, TotalPages: 1}, nil
	}
	out := make([]domain.HistoryEntry, 0, len(res.Items))
	for _, raw := range res.Items {
		var dto deliveryDTO
		if err := json.Unmarshal(raw, &dto); err != nil {
			c.logger.Warn("skipping malformed history entry", logx.Any("err", err))
			continue
		}
		out = append(out, dto.toHistory())
	}
	return out, res.Pagination, nil
}

// Accept claims an open order for the courier.
func (c *Client) Accept(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperr.ErrInvalid
	}
	_, err := c.call(ctx, http.MethodPost, "/courier/orders/"+url.PathEscape(id)+"/accept", nil, struct{}{})
	if err != nil {
		return fmt.Errorf("backend gateway: accept %s: %w", id, err)
	}
	return nil
}

// UpdateStatus reports a new delivery status to the backend.
func (c *Client) UpdateStatus(ctx context.Context, id string, status domain.DeliveryStatus, notes string) error {
	if strings.TrimSpace(id) == "" || !status.Mutable() {
		return apperr.ErrInvalid
	}
	req := updateStatusRequest{Status: string(status), Notes: notes}
	_, err := c.call(ctx, http.MethodPatch, "/courier/deliveries/"+url.PathEscape(id)+"/status", nil, req)
	if err != nil {
		return fmt.Errorf("backend gateway: update status %s: %w", id, err)
	}
	return nil
}

// Complete marks a delivery as handed over, with mandatory notes payload.
func (c *Client) Complete(ctx context.Context, id, notes string) error {
	if strings.TrimSpace(id) == "" {
		return apperr.ErrInvalid
	}
	_, err := c.call(ctx, http.MethodPost, "/courier/deliveries/"+url.PathEscape(id)+"/complete", nil, completeRequest{Notes: notes})
	if err != nil {
		return fmt.Errorf("backend gateway: complete %s: %w", id, err)
	}
	return nil
}

// Details fetches the full record of one delivery.
func (c *Client) Details(ctx context.Context, id string) (domain.DeliveryDetails, error) {
	if strings.TrimSpace(id) == "" {
		return domain.DeliveryDetails{}, apperr.ErrInvalid
	}
	body, err := c.call(ctx, http.MethodGet, "/courier/deliveries/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return domain.DeliveryDetails{}, fmt.Errorf("backend gateway: details %s: %w", id, err)
	}
	raw := parseObject(body, "delivery")
	if raw == nil {
		return domain.DeliveryDetails{}, fmt.Errorf("backend gateway: details %s: %w", id, apperr.ErrNotFound)
	}
	var dto deliveryDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return domain.DeliveryDetails{}, fmt.Errorf("backend gateway: details decode: %w", err)
	}
	return dto.toDetails(), nil
}

// Profile fetches the courier's own user record.
func (c *Client) Profile(ctx context.Context) (domain.Profile, error) {
	body, err := c.call(ctx, http.MethodGet, "/courier/profile", nil, nil)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("backend gateway: profile: %w", err)
	}
	raw := parseObject(body, "user", "profile")
	if raw == nil {
		return domain.Profile{}, fmt.Errorf("backend gateway: profile: %w", apperr.ErrNotFound)
	}
	var dto profileDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return domain.Profile{}, fmt.Errorf("backend gateway: profile decode: %w", err)
	}
	return dto.toDomain(), nil
}

// UpdateProfile applies a partial profile update and returns the new record.
func (c *Client) UpdateProfile(ctx context.Context, upd domain.PartialProfileUpdate) (domain.Profile, error) {
	if upd.Phone != nil && !domain.ValidatePhone(*upd.Phone) {
		return domain.Profile{}, apperr.ErrInvalid
	}
	req := updateProfileRequest{
		FirstName: upd.FirstName,
		LastName:  upd.LastName,
		Phone:     upd.Phone,
		Zone:      upd.Zone,
		Vehicle:   upd.Vehicle,
	}
	body, err := c.call(ctx, http.MethodPut, "/courier/profile", nil, req)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("backend gateway: update profile: %w", err)
	}
	raw := parseObject(body, "user", "profile")
	if raw == nil {
		return domain.Profile{}, nil
	}
	var dto profileDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return domain.Profile{}, fmt.Errorf("backend gateway: update profile decode: %w", err)
	}
	return dto.toDomain(), nil
}

// ChangePassword replaces the courier's password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	if current == "" || next == "" {
		return apperr.ErrInvalid
	}
	_, err := c.call(ctx, http.MethodPut, "/courier/profile/password", nil, changePasswordRequest{
		CurrentPassword: current,
		NewPassword:     next,
	})
	if err != nil {
		return fmt.Errorf("backend gateway: change password: %w", err)
	}
	return nil
}

func pageQuery(page, pageSize int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("limit", strconv.Itoa(pageSize))
	}
	return q
}

// call performs one request and returns the response body on 2xx.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, bodyLimit))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}
	return nil, statusToErr(resp.StatusCode, body)
}

type errEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// statusToErr maps an HTTP error status plus the backend's message (when one
// is present) onto the apperr sentinels.
func statusToErr(status int, body []byte) error {
	var env errEnvelope
	_ = json.Unmarshal(body, &env)
	msg := env.Message
	if msg == "" {
		msg = env.Error
	}

	var sentinel error
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		sentinel = apperr.ErrUnauthorized
	case status == http.StatusNotFound:
		sentinel = apperr.ErrNotFound
	case status == http.StatusConflict:
		sentinel = apperr.ErrConflict
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		sentinel = apperr.ErrInvalid
	case status >= 500 || status == http.StatusTooManyRequests:
		sentinel = apperr.ErrUnavailable
	default:
		sentinel = apperr.ErrUnavailable
	}

	if msg != "" {
		return fmt.Errorf("%w: %s (http %d)", sentinel, msg, status)
	}
	return fmt.Errorf("%w (http %d)", sentinel, status)
}
