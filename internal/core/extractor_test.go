package core

import (
	"encoding/base64"
	"testing"

	"github.com/google/go-cmp/cmp"

	"getatoms/internal/types"
)

func TestExtractAtoms(t *testing.T) {
	listFlag := []types.Flag{{Name: types.FlagStabilizationList, Status: "+"}}
	encode := func(s string) string {
		return base64.StdEncoding.EncodeToString([]byte(s))
	}

	tests := []struct {
		name        string
		bug         types.Bug
		attachments []types.Attachment
		want        string
	}{
		{
			name: "atoms field wins over attachments",
			bug:  types.Bug{ID: 1, Atoms: "=dev-foo/bar-1.0 amd64"},
			attachments: []types.Attachment{
				{ID: 7, Flags: listFlag, Data: encode("=dev-foo/other-2")},
			},
			want: "=dev-foo/bar-1.0 amd64",
		},
		{
			name: "flagged attachments concatenated with separator",
			bug:  types.Bug{ID: 1},
			attachments: []types.Attachment{
				{ID: 7, Flags: listFlag, Data: encode("=dev-foo/a-1")},
				{ID: 8, Flags: listFlag, Data: encode("=dev-foo/b-2 x86\n")},
				{ID: 9, Flags: listFlag, Data: encode("=dev-foo/c-3")},
			},
			want: "=dev-foo/a-1\n=dev-foo/b-2 x86\n=dev-foo/c-3",
		},
		{
			name: "obsolete and unflagged attachments skipped",
			bug:  types.Bug{ID: 1},
			attachments: []types.Attachment{
				{ID: 7, IsObsolete: true, Flags: listFlag, Data: encode("=dev-foo/old-1")},
				{ID: 8, Data: encode("=dev-foo/unflagged-1")},
				{ID: 9, Flags: []types.Flag{{Name: types.FlagStabilizationList, Status: "?"}}, Data: encode("=dev-foo/pending-1")},
				{ID: 10, Flags: listFlag, Data: encode("=dev-foo/new-2")},
			},
			want: "=dev-foo/new-2",
		},
		{
			name: "raw payload kept when not base64",
			bug:  types.Bug{ID: 1},
			attachments: []types.Attachment{
				{ID: 7, Flags: listFlag, Data: "=dev-foo/raw-1 amd64"},
			},
			want: "=dev-foo/raw-1 amd64",
		},
		{
			name: "nothing found",
			bug:  types.Bug{ID: 1},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractAtoms(tt.bug, tt.attachments)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("unexpected atoms (-want +got):\n%s", diff)
			}
		})
	}
}
