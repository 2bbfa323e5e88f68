package academyservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с конфигурационным сервисом академии
// (сезоны, категории, возрастные правила)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса академии
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetSeason получает сезон по ID
func (c *Client) GetSeason(ctx context.Context, seasonID string) (*Season, error) {
	url := fmt.Sprintf("%s/internal/seasons/%s", c.baseURL, seasonID)

	var season Season
	if err := c.getJSON(ctx, url, &season); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, err
	}

	return &season, nil
}

// GetCategories получает список категорий обучения
func (c *Client) GetCategories(ctx context.Context) ([]Category, error) {
	url := fmt.Sprintf("%s/internal/categories", c.baseURL)

	var categories []Category
	if err := c.getJSON(ctx, url, &categories); err != nil {
		return nil, err
	}

	return categories, nil
}

// GetAgeRules получает возрастные правила для отладочной генерации слотов
func (c *Client) GetAgeRules(ctx context.Context) ([]AgeRule, error) {
	url := fmt.Sprintf("%s/internal/age-rules", c.baseURL)

	var rules []AgeRule
	if err := c.getJSON(ctx, url, &rules); err != nil {
		return nil, err
	}

	return rules, nil
}

// GetAgeRulesWithGracefulDegradation получает возрастные правила с graceful degradation.
// При недоступности сервиса возвращает ErrServiceDegraded: отладочный генератор
// в этом случае использует дефолтную вместимость полос из каталога.
func (c *Client) GetAgeRulesWithGracefulDegradation(ctx context.Context) ([]AgeRule, error) {
	rules, err := c.GetAgeRules(ctx)
	if err != nil {
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("AcademyService unavailable, applying graceful degradation for age rules: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}

	c.log.Info("Successfully fetched %d age rules", len(rules))
	return rules, nil
}

// getJSON выполняет GET-запрос и декодирует JSON-ответ
func (c *Client) getJSON(ctx context.Context, url string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
