package symmetry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ankorell/strukta/atoms"
)

// HTTPFinder talks JSON to an external symmetry-detection service (an
// spglib-style analyzer behind an HTTP endpoint). One POST per lookup; the
// request carries the context deadline supplied by the caller.
type HTTPFinder struct {
	url    string
	client *http.Client
}

// NewHTTPFinder returns a finder posting to url. A nil client selects
// http.DefaultClient; deadlines come from the per-call context either way.
func NewHTTPFinder(url string, client *http.Client) *HTTPFinder {
	if client == nil {
		client = http.DefaultClient
	}

	return &HTTPFinder{url: url, client: client}
}

// symmetryRequest is the wire form of a lookup.
type symmetryRequest struct {
	Species   []string     `json:"species"`
	Positions [][3]float64 `json:"positions"`
	Cell      [3][3]float64 `json:"cell"`
	PBC       [3]bool      `json:"pbc"`
}

// symmetryResponse is the wire form of a service answer.
type symmetryResponse struct {
	SpaceGroup    int           `json:"space_group"`
	PrimitiveCell [3][3]float64 `json:"primitive_cell"`
	Wyckoff       []string      `json:"wyckoff"`
}

// FindSymmetry posts the structure and decodes the answer. Status mapping:
// 200 → Info; 404/422 → ErrNoSymmetryFound; anything else, plus transport
// and deadline failures, → *LookupError with a reason code.
func (f *HTTPFinder) FindSymmetry(ctx context.Context, set *atoms.AtomSet, cell atoms.Cell) (*Info, error) {
	payload, err := json.Marshal(symmetryRequest{
		Species:   set.SpeciesList(),
		Positions: set.Positions(),
		Cell:      cell.Basis(),
		PBC:       cell.PBC(),
	})
	if err != nil {
		return nil, &LookupError{Reason: ReasonRejected, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(payload))
	if err != nil {
		return nil, &LookupError{Reason: ReasonTransport, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		reason := ReasonTransport
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			reason = ReasonTimeout
		}

		return nil, &LookupError{Reason: reason, Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// decoded below
	case http.StatusNotFound, http.StatusUnprocessableEntity:
		return nil, ErrNoSymmetryFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return nil, &LookupError{
			Reason: ReasonRejected,
			Err:    fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(body)),
		}
	}

	var decoded symmetryResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &LookupError{Reason: ReasonTransport, Err: err}
	}

	return &Info{
		SpaceGroup:    decoded.SpaceGroup,
		PrimitiveCell: decoded.PrimitiveCell,
		Wyckoff:       decoded.Wyckoff,
	}, nil
}
