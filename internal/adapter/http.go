package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-config-keeper/internal/logger"
	"github.com/MKhiriev/go-config-keeper/internal/utils"
	"github.com/MKhiriev/go-config-keeper/models"
)

type httpRegistryClient struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPRegistryClient constructs an HTTP/REST implementation of
// [RegistryClient]. It normalises and validates the base URL and configures
// the underlying HTTP client with the resolved base URL and request timeout.
//
// Returns an error if address is empty or cannot be parsed as a valid URL.
func NewHTTPRegistryClient(address string, timeout time.Duration, logger *logger.Logger) (RegistryClient, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid registry address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &httpRegistryClient{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (c *httpRegistryClient) ListApplications(ctx context.Context) ([]models.Application, error) {
	var apps []models.Application

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&apps).
		Get("/applications")
	if err != nil {
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}

	return apps, nil
}

func (c *httpRegistryClient) GetApplication(ctx context.Context, applicationID string) (models.Application, error) {
	var app models.Application

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&app).
		Get("/applications/" + url.PathEscape(applicationID))
	if err != nil {
		return models.Application{}, fmt.Errorf("error getting application: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return models.Application{}, err
	}

	return app, nil
}

func (c *httpRegistryClient) CreateApplication(ctx context.Context, app models.Application) (models.Application, error) {
	var created models.Application

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(app).
		SetResult(&created).
		Post("/applications")
	if err != nil {
		return models.Application{}, fmt.Errorf("error creating application: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return models.Application{}, err
	}

	return created, nil
}

func (c *httpRegistryClient) UpdateApplication(ctx context.Context, applicationID string, update models.ApplicationUpdate) (models.Application, error) {
	var updated models.Application

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(update).
		SetResult(&updated).
		Patch("/applications/" + url.PathEscape(applicationID))
	if err != nil {
		return models.Application{}, fmt.Errorf("error updating application: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return models.Application{}, err
	}

	return updated, nil
}

func (c *httpRegistryClient) ArchiveApplication(ctx context.Context, applicationID string) error {
	return c.postArchival(ctx, applicationID, "archive")
}

func (c *httpRegistryClient) UnarchiveApplication(ctx context.Context, applicationID string) error {
	return c.postArchival(ctx, applicationID, "unarchive")
}

func (c *httpRegistryClient) postArchival(ctx context.Context, applicationID, action string) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Post("/applications/" + url.PathEscape(applicationID) + "/" + action)
	if err != nil {
		return fmt.Errorf("error changing archival state: %w", err)
	}

	return mapHTTPError(resp)
}

func (c *httpRegistryClient) CreateNamedConfig(ctx context.Context, applicationID, name string, data json.RawMessage, versions []string) (models.Application, error) {
	var updated models.Application

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(models.NamedConfigRequest{Name: name, Data: data, Versions: versions}).
		SetResult(&updated).
		Post("/applications/" + url.PathEscape(applicationID) + "/configs")
	if err != nil {
		return models.Application{}, fmt.Errorf("error creating named config: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return models.Application{}, err
	}

	return updated, nil
}

func (c *httpRegistryClient) UpdateNamedConfig(ctx context.Context, applicationID, name string, data json.RawMessage, versions []string) (models.Application, error) {
	var updated models.Application

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(models.NamedConfigRequest{Data: data, Versions: versions}).
		SetResult(&updated).
		Put("/applications/" + url.PathEscape(applicationID) + "/configs/" + url.PathEscape(name))
	if err != nil {
		return models.Application{}, fmt.Errorf("error updating named config: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return models.Application{}, err
	}

	return updated, nil
}

func (c *httpRegistryClient) DeleteNamedConfig(ctx context.Context, applicationID, name string) (models.Application, error) {
	var updated models.Application

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&updated).
		Delete("/applications/" + url.PathEscape(applicationID) + "/configs/" + url.PathEscape(name))
	if err != nil {
		return models.Application{}, fmt.Errorf("error deleting named config: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return models.Application{}, err
	}

	return updated, nil
}

func (c *httpRegistryClient) GetConfig(ctx context.Context, applicationID, version string) (models.ConfigResponse, error) {
	var response models.ConfigResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&response).
		Get("/config/" + url.PathEscape(applicationID) + "/" + url.PathEscape(version))
	if err != nil {
		return models.ConfigResponse{}, fmt.Errorf("error resolving config: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return models.ConfigResponse{}, err
	}

	return response, nil
}
