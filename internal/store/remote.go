package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shimotmr/Pudu-cases/internal/admins"
	"github.com/shimotmr/Pudu-cases/internal/cases"
	"github.com/shimotmr/Pudu-cases/internal/transport"
)

// Remote speaks the action protocol against one fixed endpoint URL.
// Every call is a POST with a disambiguating action field; the response
// is the {success, data, message} envelope. Backend failures come back
// as ordinary errors, never panics; ErrNotFound is preserved for
// unknown-id updates.
type Remote struct {
	endpoint string
	client   *http.Client
}

func NewRemote(endpoint string) *Remote {
	return &Remote{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type actionPayload struct {
	Action  string      `json:"action"`
	Data    interface{} `json:"data,omitempty"`
	ID      string      `json:"id,omitempty"`
	Email   string      `json:"email,omitempty"`
	AddedBy string      `json:"addedBy,omitempty"`
}

func (r *Remote) call(ctx context.Context, payload actionPayload) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", payload.Action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", payload.Action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", payload.Action, err)
	}
	defer resp.Body.Close()

	var env transport.RawEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%s: malformed response: %w", payload.Action, err)
	}

	if !env.Success {
		if env.Message == "ID not found" {
			return nil, ErrNotFound
		}
		if env.Message == "" {
			return nil, fmt.Errorf("%s: backend refused the request", payload.Action)
		}
		return nil, fmt.Errorf("%s: %s", payload.Action, env.Message)
	}
	return env.Data, nil
}

func (r *Remote) ListCases(ctx context.Context) ([]cases.VideoCase, error) {
	data, err := r.call(ctx, actionPayload{Action: "get"})
	if err != nil {
		return nil, err
	}

	items := make([]cases.VideoCase, 0)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("get: decode cases: %w", err)
		}
	}
	return items, nil
}

func (r *Remote) CreateCase(ctx context.Context, draft cases.Draft) (cases.VideoCase, error) {
	data, err := r.call(ctx, actionPayload{Action: "create", Data: draft})
	if err != nil {
		return cases.VideoCase{}, err
	}

	// The created record, server-assigned id included, arrives as a
	// one-element sequence.
	var created []cases.VideoCase
	if err := json.Unmarshal(data, &created); err != nil {
		return cases.VideoCase{}, fmt.Errorf("create: decode response: %w", err)
	}
	if len(created) == 0 {
		return cases.VideoCase{}, fmt.Errorf("create: empty response")
	}
	return created[0], nil
}

func (r *Remote) UpdateCase(ctx context.Context, item cases.VideoCase) error {
	_, err := r.call(ctx, actionPayload{Action: "update", Data: item})
	return err
}

func (r *Remote) DeleteCase(ctx context.Context, id string) error {
	_, err := r.call(ctx, actionPayload{Action: "delete", ID: id})
	return err
}

func (r *Remote) ListAdmins(ctx context.Context) ([]admins.AdminUser, error) {
	data, err := r.call(ctx, actionPayload{Action: "getAdmins"})
	if err != nil {
		return nil, err
	}

	items := make([]admins.AdminUser, 0)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("getAdmins: decode admins: %w", err)
		}
	}
	return items, nil
}

func (r *Remote) AddAdmin(ctx context.Context, email, addedBy string) error {
	_, err := r.call(ctx, actionPayload{Action: "addAdmin", Email: email, AddedBy: addedBy})
	return err
}

func (r *Remote) RemoveAdmin(ctx context.Context, email string) error {
	_, err := r.call(ctx, actionPayload{Action: "deleteAdmin", Email: email})
	return err
}
