package adapters

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
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"getatoms/internal/ports"
	"getatoms/internal/shared"
	"getatoms/internal/types"
)

const DefaultBugzillaURL = "https://bugs.gentoo.org"

// APIKeyURL is where Gentoo Bugzilla users generate API keys.
const APIKeyURL = "https://bugs.gentoo.org/userprefs.cgi?tab=apikey"

type BugzillaConfig struct {
	BaseURL    string
	APIKey     string
	TimeoutSec int
	HTTPClient *http.Client
}

type BugzillaRESTAdapter struct {
	BaseURL string
	APIKey  string
	client  *http.Client
}

var attachmentFields = []string{"id", "bug_id", "is_obsolete", "flags", "data"}

func NewBugzillaRESTAdapter(cfg BugzillaConfig) BugzillaRESTAdapter {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBugzillaURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
		if cfg.TimeoutSec > 0 {
			client.Timeout = time.Duration(cfg.TimeoutSec) * time.Second
		}
	}
	return BugzillaRESTAdapter{
		BaseURL: baseURL,
		APIKey:  cfg.APIKey,
		client:  client,
	}
}

func (a BugzillaRESTAdapter) Bugs(ctx context.Context, query types.BugQuery) ([]types.Bug, error) {
	var payload restBugsResponse
	if err := a.get(ctx, "bug", query.Params(), &payload); err != nil {
		return nil, err
	}
	bugs := make([]types.Bug, 0, len(payload.Bugs))
	for _, bug := range payload.Bugs {
		bugs = append(bugs, bug.toBug())
	}
	return bugs, nil
}

func (a BugzillaRESTAdapter) Attachments(ctx context.Context, bugIDs []int) (map[int][]types.Attachment, error) {
	out := map[int][]types.Attachment{}
	if len(bugIDs) == 0 {
		return out, nil
	}
	params := url.Values{}
	for _, id := range bugIDs[1:] {
		params.Add("ids", strconv.Itoa(id))
	}
	for _, field := range attachmentFields {
		params.Add("include_fields", field)
	}
	var payload restAttachmentsResponse
	if err := a.get(ctx, fmt.Sprintf("bug/%d/attachment", bugIDs[0]), params, &payload); err != nil {
		return nil, err
	}
	for key, list := range payload.Bugs {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("API call failed: unexpected bug key in attachment response").
				WithCause(err)
		}
		attachments := make([]types.Attachment, 0, len(list))
		for _, attachment := range list {
			if attachment == nil {
				continue
			}
			attachments = append(attachments, attachment.toAttachment(id))
		}
		out[id] = attachments
	}
	return out, nil
}

func (a BugzillaRESTAdapter) get(ctx context.Context, path string, params url.Values, target interface{}) error {
	if a.APIKey != "" {
		params.Set("Bugzilla_api_key", a.APIKey)
	}
	endpoint := a.BaseURL + "/rest/" + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create bugzilla request").
			WithCause(err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := a.client.Do(req)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("API call failed: %v", err)).
			WithCause(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("API call failed: reading response").
			WithCause(err)
	}

	var apiErr restError
	if jsonErr := json.Unmarshal(body, &apiErr); jsonErr == nil && (apiErr.Error || apiErr.Message != "") {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("API call failed: " + apiErr.Message).
			WithCause(shared.HTTPStatusError(resp.StatusCode, endpoint))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("API call failed: HTTP %d", resp.StatusCode)).
			WithCause(shared.HTTPStatusErrorWithBody(resp.StatusCode, endpoint, strings.TrimSpace(string(body))))
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("API call failed: invalid JSON response").
			WithCause(err)
	}
	return nil
}

type restError struct {
	Error   bool   `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type restBugsResponse struct {
	Bugs []restBug `json:"bugs"`
}

type restFlag struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

type restBug struct {
	ID         int        `json:"id"`
	Status     string     `json:"status"`
	Resolution string     `json:"resolution"`
	Component  string     `json:"component"`
	AssignedTo string     `json:"assigned_to"`
	CC         []string   `json:"cc"`
	Atoms      *string    `json:"cf_stabilisation_atoms"`
	DependsOn  []int      `json:"depends_on"`
	Flags      []restFlag `json:"flags"`
}

func (b restBug) toBug() types.Bug {
	bug := types.Bug{
		ID:         b.ID,
		Status:     b.Status,
		Resolution: b.Resolution,
		Component:  b.Component,
		AssignedTo: b.AssignedTo,
		CC:         b.CC,
		DependsOn:  b.DependsOn,
		Flags:      toFlags(b.Flags),
	}
	if b.Atoms != nil {
		bug.Atoms = *b.Atoms
	}
	return bug
}

type restAttachmentsResponse struct {
	Bugs map[string][]*restAttachment `json:"bugs"`
}

type restAttachment struct {
	ID         int          `json:"id"`
	BugID      int          `json:"bug_id"`
	IsObsolete bugzillaBool `json:"is_obsolete"`
	Flags      []restFlag   `json:"flags"`
	Data       string       `json:"data"`
}

func (a restAttachment) toAttachment(bugID int) types.Attachment {
	if a.BugID != 0 {
		bugID = a.BugID
	}
	return types.Attachment{
		ID:         a.ID,
		BugID:      bugID,
		IsObsolete: bool(a.IsObsolete),
		Flags:      toFlags(a.Flags),
		Data:       a.Data,
	}
}

func toFlags(flags []restFlag) []types.Flag {
	if len(flags) == 0 {
		return nil
	}
	out := make([]types.Flag, 0, len(flags))
	for _, flag := range flags {
		out = append(out, types.Flag{Name: flag.Name, Status: flag.Status})
	}
	return out
}

// bugzillaBool accepts both JSON booleans and the 0/1 integers older
// Bugzilla releases return for boolean fields.
type bugzillaBool bool

func (b *bugzillaBool) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch string(trimmed) {
	case "true", "1":
		*b = true
	case "false", "0", "null":
		*b = false
	default:
		return fmt.Errorf("invalid boolean value %s", trimmed)
	}
	return nil
}

var _ ports.BugSourcePort = BugzillaRESTAdapter{}
