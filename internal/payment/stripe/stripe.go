package stripe

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrConfigInvalid    = errors.New("stripe config invalid")
	ErrRequestFailed    = errors.New("stripe request failed")
	ErrResponseInvalid  = errors.New("stripe response invalid")
	ErrSignatureInvalid = errors.New("stripe signature invalid")
)

const (
	defaultAPIBaseURL        = "https://api.stripe.com"
	defaultTimeout           = 12 * time.Second
	defaultWebhookToleranceS = 300
)

// Stripe 对零小数位币种按整数报价, 其余按百分位报价
var zeroDecimalCurrencies = map[string]struct{}{
	"BIF": {},
	"CLP": {},
	"DJF": {},
	"GNF": {},
	"JPY": {},
	"KMF": {},
	"KRW": {},
	"MGA": {},
	"PYG": {},
	"RWF": {},
	"UGX": {},
	"VND": {},
	"VUV": {},
	"XAF": {},
	"XOF": {},
	"XPF": {},
}

// Config Stripe 渠道配置
type Config struct {
	SecretKey               string
	WebhookSecret           string
	SuccessURL              string
	CancelURL               string
	APIBaseURL              string
	WebhookToleranceSeconds int
}

// Client Stripe Checkout 客户端
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient 创建 Stripe 客户端
func NewClient(cfg Config) *Client {
	cfg.SecretKey = strings.TrimSpace(cfg.SecretKey)
	cfg.WebhookSecret = strings.TrimSpace(cfg.WebhookSecret)
	cfg.SuccessURL = strings.TrimSpace(cfg.SuccessURL)
	cfg.CancelURL = strings.TrimSpace(cfg.CancelURL)
	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.WebhookToleranceSeconds <= 0 {
		cfg.WebhookToleranceSeconds = defaultWebhookToleranceS
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: defaultTimeout},
	}
}

// Configured 密钥是否已配置
func (c *Client) Configured() bool {
	return c != nil && c.cfg.SecretKey != ""
}

// CreateSessionInput 创建 Checkout Session 输入
type CreateSessionInput struct {
	OrderNo     string
	PaymentID   uint
	Amount      string
	Currency    string
	Description string
}

// CreateSessionResult 创建 Checkout Session 返回
type CreateSessionResult struct {
	SessionID string
	PayURL    string
	Status    string
}

// WebhookEvent Stripe webhook 解析结果
type WebhookEvent struct {
	EventID    string
	EventType  string
	SessionID  string
	PaymentID  uint
	OrderNo    string
	Status     string
	Amount     string
	Currency   string
	OccurredAt *time.Time
}

// CreateCheckoutSession 创建 Stripe Checkout Session
func (c *Client) CreateCheckoutSession(ctx context.Context, input CreateSessionInput) (*CreateSessionResult, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	orderNo := strings.TrimSpace(input.OrderNo)
	if orderNo == "" {
		return nil, fmt.Errorf("%w: order_no is required", ErrConfigInvalid)
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		return nil, fmt.Errorf("%w: currency is required", ErrConfigInvalid)
	}
	minorAmount, err := toMinorAmount(input.Amount, currency)
	if err != nil {
		return nil, err
	}
	subject := strings.TrimSpace(input.Description)
	if subject == "" {
		subject = orderNo
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", c.cfg.SuccessURL)
	form.Set("cancel_url", c.cfg.CancelURL)
	form.Set("client_reference_id", orderNo)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", strings.ToLower(currency))
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(minorAmount, 10))
	form.Set("line_items[0][price_data][product_data][name]", subject)
	form.Set("metadata[payment_id]", strconv.FormatUint(uint64(input.PaymentID), 10))
	form.Set("metadata[order_no]", orderNo)
	form.Set("payment_method_types[]", "card")

	respBody, statusCode, err := c.doFormRequest(ctx, http.MethodPost, "/v1/checkout/sessions", form)
	if err != nil {
		return nil, err
	}
	if statusCode < 200 || statusCode >= 300 {
		return nil, fmt.Errorf("%w: create checkout session status %d", ErrResponseInvalid, statusCode)
	}
	raw, err := decodeRawMap(respBody)
	if err != nil {
		return nil, err
	}
	result := &CreateSessionResult{
		SessionID: readString(raw, "id"),
		PayURL:    readString(raw, "url"),
		Status:    readString(raw, "status"),
	}
	if result.SessionID == "" || result.PayURL == "" {
		return nil, fmt.Errorf("%w: missing session id or url", ErrResponseInvalid)
	}
	return result, nil
}

// QuerySessionResult 查询 Checkout Session 返回
type QuerySessionResult struct {
	SessionID string
	Status    string
	Amount    string
	Currency  string
}

// QueryCheckoutSession 查询 Checkout Session 当前状态
func (c *Client) QueryCheckoutSession(ctx context.Context, sessionID string) (*QuerySessionResult, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session_id is required", ErrConfigInvalid)
	}
	path := fmt.Sprintf("/v1/checkout/sessions/%s", url.PathEscape(sessionID))
	respBody, statusCode, err := c.doJSONRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if statusCode < 200 || statusCode >= 300 {
		return nil, fmt.Errorf("%w: query checkout session status %d", ErrResponseInvalid, statusCode)
	}
	raw, err := decodeRawMap(respBody)
	if err != nil {
		return nil, err
	}
	result := &QuerySessionResult{
		SessionID: readString(raw, "id"),
		Currency:  strings.ToUpper(readString(raw, "currency")),
		Status:    mapCheckoutSessionStatus(readString(raw, "payment_status"), readString(raw, "status")),
	}
	if amountMinor := readInt64(raw, "amount_total"); amountMinor > 0 && result.Currency != "" {
		result.Amount = fromMinorAmount(amountMinor, result.Currency)
	}
	if result.SessionID == "" {
		return nil, fmt.Errorf("%w: missing checkout session id", ErrResponseInvalid)
	}
	return result, nil
}

// VerifyAndParseWebhook 校验签名并解析 Stripe webhook
func (c *Client) VerifyAndParseWebhook(signatureHeader string, body []byte, now time.Time) (*WebhookEvent, error) {
	if c == nil || c.cfg.WebhookSecret == "" {
		return nil, fmt.Errorf("%w: webhook_secret is required", ErrConfigInvalid)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: body is empty", ErrResponseInvalid)
	}
	if now.IsZero() {
		now = time.Now()
	}
	if strings.TrimSpace(signatureHeader) == "" {
		return nil, fmt.Errorf("%w: Stripe-Signature is required", ErrSignatureInvalid)
	}
	timestamp, signatures, err := parseSignatureHeader(signatureHeader)
	if err != nil {
		return nil, err
	}
	if c.cfg.WebhookToleranceSeconds > 0 {
		delta := math.Abs(float64(now.Unix() - timestamp))
		if delta > float64(c.cfg.WebhookToleranceSeconds) {
			return nil, fmt.Errorf("%w: timestamp outside tolerance", ErrSignatureInvalid)
		}
	}

	expected := ComputeSignature(c.cfg.WebhookSecret, timestamp, body)
	matched := false
	for _, sig := range signatures {
		if hmac.Equal([]byte(strings.ToLower(sig)), []byte(expected)) {
			matched = true
			break
		}
	}
	if !matched {
		return nil, fmt.Errorf("%w: verify failed", ErrSignatureInvalid)
	}

	eventRaw, err := decodeRawMap(body)
	if err != nil {
		return nil, err
	}
	eventType := readString(eventRaw, "type")
	if eventType == "" {
		return nil, fmt.Errorf("%w: missing event type", ErrResponseInvalid)
	}
	dataRaw, ok := eventRaw["data"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: missing data object", ErrResponseInvalid)
	}
	objectRaw, ok := dataRaw["object"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: missing event object", ErrResponseInvalid)
	}

	event := &WebhookEvent{
		EventID:   readString(eventRaw, "id"),
		EventType: eventType,
	}
	metadata := readMap(objectRaw, "metadata")
	event.PaymentID = parsePaymentID(metadata)
	event.OrderNo = readString(metadata, "order_no")
	event.SessionID = readString(objectRaw, "id")
	event.Currency = strings.ToUpper(readString(objectRaw, "currency"))
	if amountMinor := readInt64(objectRaw, "amount_total"); amountMinor > 0 && event.Currency != "" {
		event.Amount = fromMinorAmount(amountMinor, event.Currency)
	}
	if created := readInt64(objectRaw, "created"); created > 0 {
		occurredAt := time.Unix(created, 0)
		event.OccurredAt = &occurredAt
	}
	if status, ok := mapEventTypeStatus(eventType); ok {
		event.Status = status
	} else {
		event.Status = mapCheckoutSessionStatus(readString(objectRaw, "payment_status"), readString(objectRaw, "status"))
	}
	return event, nil
}

func (c *Client) validate() error {
	if c == nil {
		return fmt.Errorf("%w: client is nil", ErrConfigInvalid)
	}
	if c.cfg.SecretKey == "" {
		return fmt.Errorf("%w: secret_key is required", ErrConfigInvalid)
	}
	if c.cfg.SuccessURL == "" {
		return fmt.Errorf("%w: success_url is required", ErrConfigInvalid)
	}
	if c.cfg.CancelURL == "" {
		return fmt.Errorf("%w: cancel_url is required", ErrConfigInvalid)
	}
	return nil
}

func (c *Client) doFormRequest(ctx context.Context, method, path string, form url.Values) ([]byte, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.APIBaseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.doRequest(req)
}

func (c *Client) doJSONRequest(ctx context.Context, method, path string) ([]byte, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.APIBaseURL+path, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.SecretKey)
	return c.doRequest(req)
}

func (c *Client) doRequest(req *http.Request) ([]byte, int, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read response failed", ErrResponseInvalid)
	}
	return body, resp.StatusCode, nil
}

func mapEventTypeStatus(eventType string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(eventType)) {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		return "success", true
	case "checkout.session.expired":
		return "expired", true
	case "checkout.session.async_payment_failed":
		return "failed", true
	default:
		return "", false
	}
}

func mapCheckoutSessionStatus(paymentStatus string, sessionStatus string) string {
	paymentStatus = strings.ToLower(strings.TrimSpace(paymentStatus))
	sessionStatus = strings.ToLower(strings.TrimSpace(sessionStatus))
	if paymentStatus == "paid" {
		return "success"
	}
	if sessionStatus == "expired" {
		return "expired"
	}
	if sessionStatus == "complete" && paymentStatus == "no_payment_required" {
		return "success"
	}
	return "pending"
}

func parsePaymentID(metadata map[string]interface{}) uint {
	if len(metadata) == 0 {
		return 0
	}
	raw := readString(metadata, "payment_id")
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0
	}
	return uint(id)
}

func toMinorAmount(amount string, currency string) (int64, error) {
	parsed, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return 0, fmt.Errorf("%w: amount is invalid", ErrConfigInvalid)
	}
	if parsed.LessThanOrEqual(decimal.Zero) {
		return 0, fmt.Errorf("%w: amount must be greater than zero", ErrConfigInvalid)
	}
	scale := currencyScale(currency)
	return parsed.Shift(int32(scale)).Round(0).IntPart(), nil
}

func fromMinorAmount(minor int64, currency string) string {
	scale := currencyScale(currency)
	return decimal.NewFromInt(minor).Shift(int32(-scale)).StringFixed(int32(scale))
}

func currencyScale(currency string) int {
	upper := strings.ToUpper(strings.TrimSpace(currency))
	if _, ok := zeroDecimalCurrencies[upper]; ok {
		return 0
	}
	return 2
}

// ComputeSignature 计算 webhook 签名, 格式为 hex(HMAC-SHA256(secret, "t.body"))
func ComputeSignature(secret string, timestamp int64, body []byte) string {
	payload := strconv.FormatInt(timestamp, 10) + "." + string(body)
	h := hmac.New(sha256.New, []byte(secret))
	_, _ = h.Write([]byte(payload))
	return strings.ToLower(hex.EncodeToString(h.Sum(nil)))
}

func parseSignatureHeader(signatureHeader string) (int64, []string, error) {
	timestamp := int64(0)
	signatures := make([]string, 0)
	for _, part := range strings.Split(signatureHeader, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		value := strings.TrimSpace(kv[1])
		switch key {
		case "t":
			parsed, err := strconv.ParseInt(value, 10, 64)
			if err != nil || parsed <= 0 {
				return 0, nil, fmt.Errorf("%w: invalid timestamp", ErrSignatureInvalid)
			}
			timestamp = parsed
		case "v1":
			if value != "" {
				signatures = append(signatures, strings.ToLower(value))
			}
		}
	}
	if timestamp <= 0 {
		return 0, nil, fmt.Errorf("%w: timestamp is missing", ErrSignatureInvalid)
	}
	if len(signatures) == 0 {
		return 0, nil, fmt.Errorf("%w: v1 signature is missing", ErrSignatureInvalid)
	}
	return timestamp, signatures, nil
}

func decodeRawMap(body []byte) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode response failed", ErrResponseInvalid)
	}
	return raw, nil
}

func readString(raw map[string]interface{}, key string) string {
	if raw == nil {
		return ""
	}
	value, ok := raw[key]
	if !ok || value == nil {
		return ""
	}
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case float64:
		return strconv.FormatInt(int64(typed), 10)
	default:
		return ""
	}
}

func readInt64(raw map[string]interface{}, key string) int64 {
	if raw == nil {
		return 0
	}
	value, ok := raw[key]
	if !ok || value == nil {
		return 0
	}
	switch typed := value.(type) {
	case float64:
		return int64(typed)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(typed), 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func readMap(raw map[string]interface{}, key string) map[string]interface{} {
	if raw == nil {
		return nil
	}
	value, ok := raw[key]
	if !ok || value == nil {
		return nil
	}
	mapped, ok := value.(map[string]interface{})
	if !ok {
		return nil
	}
	return mapped
}
