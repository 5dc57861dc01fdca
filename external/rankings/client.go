package rankings

import (
	"context"
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/gridironhq/waiverwire/internal/domain/player"
	"github.com/gridironhq/waiverwire/internal/platform/logging"
	"github.com/gridironhq/waiverwire/internal/usecase"
)

const (
	defaultBaseURL = "https://api.fantasypros.com/public/v2/json/nfl"
	defaultTimeout = 10 * time.Second
	defaultFormat  = "half-ppr"

	TrendDirectionRiser  = "riser"
	TrendDirectionFaller = "faller"
)

type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Format  string
	Logger  *logging.Logger
}

// Client reads expert-consensus rankings, projections and trend feeds. It
// uses fasthttp because the rankings endpoints are polled on a hot path and
// the payloads are small.
type Client struct {
	httpClient *fasthttp.Client
	baseURL    string
	apiKey     string
	timeout    time.Duration
	format     string
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	format := strings.TrimSpace(cfg.Format)
	if format == "" {
		format = defaultFormat
	}

	return &Client{
		httpClient: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(cfg.APIKey),
		timeout: timeout,
		format:  format,
		logger:  logger,
	}
}

type rankingsEnvelope struct {
	Players []struct {
		PlayerName string `json:"player_name"`
		PositionID string `json:"player_position_id"`
		TeamID     string `json:"player_team_id"`
		RankECR    int    `json:"rank_ecr"`
		Tier       int    `json:"tier"`
	} `json:"players"`
}

type projectionsEnvelope struct {
	Players []struct {
		Name       string `json:"name"`
		PositionID string `json:"position_id"`
		TeamID     string `json:"team_id"`
		Stats      struct {
			Points float64 `json:"fpts"`
		} `json:"stats"`
	} `json:"players"`
}

type trendsEnvelope struct {
	Players []struct {
		PlayerName string `json:"player_name"`
		Direction  string `json:"direction"`
		RankDelta  int    `json:"rank_delta"`
	} `json:"players"`
}

func (c *Client) GetConsensusRankings(ctx context.Context, format string) ([]usecase.PlayerRanking, error) {
	if strings.TrimSpace(format) == "" {
		format = c.format
	}

	var envelope rankingsEnvelope
	err := c.doJSON(ctx, "/consensus-rankings", map[string]string{
		"type":     "weekly",
		"scoring":  format,
		"position": "ALL",
	}, &envelope)
	if err != nil {
		return nil, fmt.Errorf("fetch consensus rankings format=%s: %w", format, err)
	}

	out := make([]usecase.PlayerRanking, 0, len(envelope.Players))
	for _, item := range envelope.Players {
		name := strings.TrimSpace(item.PlayerName)
		if name == "" || item.RankECR <= 0 {
			continue
		}
		out = append(out, usecase.PlayerRanking{
			PlayerName: name,
			Position:   player.Position(strings.ToUpper(strings.TrimSpace(item.PositionID))),
			Team:       strings.ToUpper(strings.TrimSpace(item.TeamID)),
			Rank:       item.RankECR,
			Tier:       item.Tier,
		})
	}

	return out, nil
}

func (c *Client) GetROSProjections(ctx context.Context, position player.Position, format string) ([]usecase.PlayerProjection, error) {
	if strings.TrimSpace(format) == "" {
		format = c.format
	}

	var envelope projectionsEnvelope
	err := c.doJSON(ctx, "/projections", map[string]string{
		"position": string(position),
		"scoring":  format,
		"week":     "0",
	}, &envelope)
	if err != nil {
		return nil, fmt.Errorf("fetch ros projections position=%s: %w", position, err)
	}

	out := make([]usecase.PlayerProjection, 0, len(envelope.Players))
	for _, item := range envelope.Players {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}
		out = append(out, usecase.PlayerProjection{
			PlayerName:      name,
			Position:        player.Position(strings.ToUpper(strings.TrimSpace(item.PositionID))),
			Team:            strings.ToUpper(strings.TrimSpace(item.TeamID)),
			ProjectedPoints: item.Stats.Points,
		})
	}

	return out, nil
}

func (c *Client) GetTrends(ctx context.Context, direction string) ([]usecase.TrendingRanking, error) {
	direction = strings.ToLower(strings.TrimSpace(direction))
	switch direction {
	case TrendDirectionRiser, TrendDirectionFaller:
	default:
		return nil, fmt.Errorf("unknown trend direction %q", direction)
	}

	var envelope trendsEnvelope
	err := c.doJSON(ctx, "/trends", map[string]string{
		"direction": direction,
	}, &envelope)
	if err != nil {
		return nil, fmt.Errorf("fetch trends direction=%s: %w", direction, err)
	}

	out := make([]usecase.TrendingRanking, 0, len(envelope.Players))
	for _, item := range envelope.Players {
		name := strings.TrimSpace(item.PlayerName)
		if name == "" {
			continue
		}
		out = append(out, usecase.TrendingRanking{
			PlayerName: name,
			Direction:  strings.ToLower(strings.TrimSpace(item.Direction)),
			RankDelta:  item.RankDelta,
		})
	}

	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(c.baseURL)
	_, _ = buf.WriteString(path)

	args := fasthttp.AcquireArgs()
	for key, value := range query {
		args.Set(key, value)
	}
	if args.Len() > 0 {
		_ = buf.WriteByte('?')
		_, _ = buf.Write(args.QueryString())
	}
	fasthttp.ReleaseArgs(args)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(buf.String())
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	if err := c.httpClient.DoTimeout(req, resp, c.timeout); err != nil {
		c.logger.WarnContext(ctx, "rankings request failed", "path", path, "error", err)
		return fmt.Errorf("send request: %w", err)
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		return fmt.Errorf("provider status=%d path=%s", status, path)
	}

	body, err := resp.BodyUncompressed()
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if err := sonic.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}

	return nil
}
