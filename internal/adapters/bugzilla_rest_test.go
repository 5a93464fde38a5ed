package adapters

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"getatoms/internal/types"
)

func TestBugzillaRESTAdapterBugs(t *testing.T) {
	var captured url.Values
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		captured = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"bugs":[
			{"id":1,"status":"IN_PROGRESS","component":"Stabilization","cc":["amd64@gentoo.org"],
			 "cf_stabilisation_atoms":"=dev-foo/bar-1.0 amd64","depends_on":[2],
			 "flags":[{"name":"sanity-check","status":"+"}]},
			{"id":3,"status":"CONFIRMED","component":"Keywording","cc":[],"cf_stabilisation_atoms":null,"depends_on":[]}
		],"faults":[]}`))
	}))
	defer server.Close()

	adapter := NewBugzillaRESTAdapter(BugzillaConfig{BaseURL: server.URL + "/", APIKey: "secret"})
	bugs, err := adapter.Bugs(t.Context(), types.BugQuery{
		Resolution: types.ResolutionOpen,
		Email:      "amd64@gentoo.org",
		Components: []string{"Stabilization", "Keywording"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/rest/bug", path)
	assert.Equal(t, "secret", captured.Get("Bugzilla_api_key"))
	assert.Equal(t, "amd64@gentoo.org", captured.Get("email1"))
	if diff := cmp.Diff([]string{"Stabilization", "Keywording"}, captured["component"]); diff != "" {
		t.Fatalf("unexpected components (-want +got):\n%s", diff)
	}

	expected := []types.Bug{
		{
			ID:        1,
			Status:    "IN_PROGRESS",
			Component: "Stabilization",
			CC:        []string{"amd64@gentoo.org"},
			Atoms:     "=dev-foo/bar-1.0 amd64",
			DependsOn: []int{2},
			Flags:     []types.Flag{{Name: "sanity-check", Status: "+"}},
		},
		{
			ID:        3,
			Status:    "CONFIRMED",
			Component: "Keywording",
			CC:        []string{},
			DependsOn: []int{},
		},
	}
	if diff := cmp.Diff(expected, bugs); diff != "" {
		t.Fatalf("unexpected bugs (-want +got):\n%s", diff)
	}
}

func TestBugzillaRESTAdapterEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"bugs":[]}`))
	}))
	defer server.Close()

	adapter := NewBugzillaRESTAdapter(BugzillaConfig{BaseURL: server.URL})
	bugs, err := adapter.Bugs(t.Context(), types.BugQuery{ID: 42})
	require.NoError(t, err)
	assert.NotNil(t, bugs)
	assert.Empty(t, bugs)
}

func TestBugzillaRESTAdapterErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode errbuilder.ErrCode
		wantMsg  string
	}{
		{
			name:     "api error payload",
			status:   http.StatusOK,
			body:     `{"error":true,"code":410,"message":"You must log in before using this part of Bugzilla."}`,
			wantCode: errbuilder.CodeFailedPrecondition,
			wantMsg:  "API call failed: You must log in before using this part of Bugzilla.",
		},
		{
			name:     "api error with http status",
			status:   http.StatusUnauthorized,
			body:     `{"error":true,"code":306,"message":"The API key you specified is invalid."}`,
			wantCode: errbuilder.CodeFailedPrecondition,
			wantMsg:  "API call failed: The API key you specified is invalid.",
		},
		{
			name:     "http status without payload",
			status:   http.StatusBadGateway,
			body:     `bad gateway`,
			wantCode: errbuilder.CodeInternal,
			wantMsg:  "API call failed: HTTP 502",
		},
		{
			name:     "invalid json",
			status:   http.StatusOK,
			body:     `<html>`,
			wantCode: errbuilder.CodeInternal,
			wantMsg:  "API call failed: invalid JSON response",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			adapter := NewBugzillaRESTAdapter(BugzillaConfig{BaseURL: server.URL})
			_, err := adapter.Bugs(t.Context(), types.BugQuery{ID: 1})
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errbuilder.CodeOf(err))
			var builder *errbuilder.ErrBuilder
			require.ErrorAs(t, err, &builder)
			assert.Equal(t, tt.wantMsg, builder.Msg)
		})
	}
}

func TestBugzillaRESTAdapterTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := server.URL
	server.Close()

	adapter := NewBugzillaRESTAdapter(BugzillaConfig{BaseURL: baseURL, TimeoutSec: 1})
	_, err := adapter.Bugs(t.Context(), types.BugQuery{ID: 1})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))
}

func TestBugzillaRESTAdapterAttachments(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("=dev-foo/bar-1.0\n"))
	var path string
	var captured url.Values
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		path = r.URL.Path
		captured = r.URL.Query()
		_, _ = w.Write([]byte(`{"bugs":{
			"5":[{"id":50,"bug_id":5,"is_obsolete":0,"flags":[{"name":"stabilization-list","status":"+"}],"data":"` + payload + `"}],
			"6":[{"id":60,"bug_id":6,"is_obsolete":true,"flags":[],"data":""}, null],
			"7":[]
		},"attachments":{}}`))
	}))
	defer server.Close()

	adapter := NewBugzillaRESTAdapter(BugzillaConfig{BaseURL: server.URL, APIKey: "k"})
	got, err := adapter.Attachments(t.Context(), []int{5, 6, 7})
	require.NoError(t, err)

	assert.Equal(t, 1, requests)
	assert.Equal(t, "/rest/bug/5/attachment", path)
	if diff := cmp.Diff([]string{"6", "7"}, captured["ids"]); diff != "" {
		t.Fatalf("unexpected ids (-want +got):\n%s", diff)
	}

	expected := map[int][]types.Attachment{
		5: {{ID: 50, BugID: 5, Flags: []types.Flag{{Name: "stabilization-list", Status: "+"}}, Data: payload}},
		6: {{ID: 60, BugID: 6, IsObsolete: true}},
		7: {},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatalf("unexpected attachments (-want +got):\n%s", diff)
	}
}

func TestBugzillaRESTAdapterAttachmentsNoBugs(t *testing.T) {
	adapter := NewBugzillaRESTAdapter(BugzillaConfig{BaseURL: "http://127.0.0.1:1"})
	got, err := adapter.Attachments(t.Context(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewBugzillaRESTAdapterDefaults(t *testing.T) {
	adapter := NewBugzillaRESTAdapter(BugzillaConfig{})
	assert.Equal(t, DefaultBugzillaURL, adapter.BaseURL)
}
