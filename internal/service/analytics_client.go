package service

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// AnalyticsClient increments usage counters on the external analytics
// collector. Counting is best effort: failures are logged and swallowed so
// a dead collector never breaks a share or a print.
type AnalyticsClient struct {
	httpClient *resty.Client
	enabled    bool
	logger     *zap.Logger
}

// analyticsEvent increment payload
type analyticsEvent struct {
	Metric     string `json:"metric"`
	CompanyID  string `json:"company_id"`
	PropertyID string `json:"property_id,omitempty"`
	Channel    string `json:"channel,omitempty"`
	Count      int    `json:"count"`
}

func NewAnalyticsClient(endpoint string, enabled bool, logger *zap.Logger) *AnalyticsClient {
	client := resty.New().
		SetBaseURL(endpoint).
		SetTimeout(5*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetHeader("Content-Type", "application/json")

	return &AnalyticsClient{httpClient: client, enabled: enabled, logger: logger}
}

// CountShare records one share on a channel. Fire and forget.
func (c *AnalyticsClient) CountShare(companyID, propertyID, channel string) {
	c.send(analyticsEvent{
		Metric:     "property_share",
		CompanyID:  companyID,
		PropertyID: propertyID,
		Channel:    channel,
		Count:      1,
	})
}

// CountPrint records a print run of n documents. Fire and forget.
func (c *AnalyticsClient) CountPrint(companyID string, n int) {
	c.send(analyticsEvent{
		Metric:    "property_print",
		CompanyID: companyID,
		Count:     n,
	})
}

func (c *AnalyticsClient) send(event analyticsEvent) {
	if !c.enabled {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		resp, err := c.httpClient.R().
			SetContext(ctx).
			SetBody(event).
			Post("")
		if err != nil {
			c.logger.Warn("Analytics increment failed",
				zap.String("metric", event.Metric),
				zap.Error(err),
			)
			return
		}
		if resp.IsError() {
			c.logger.Warn("Analytics increment rejected",
				zap.String("metric", event.Metric),
				zap.Int("status", resp.StatusCode()),
			)
		}
	}()
}
