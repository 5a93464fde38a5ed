package core

import (
	"encoding/base64"
	"strings"

	"getatoms/internal/types"
)

// ExtractAtoms returns the raw atom list of bug. The dedicated atoms
// field wins; otherwise the bodies of all non-obsolete attachments
// flagged stabilization-list+ are concatenated, newline separated.
func ExtractAtoms(bug types.Bug, attachments []types.Attachment) string {
	if bug.Atoms != "" {
		return bug.Atoms
	}
	var builder strings.Builder
	for _, attachment := range attachments {
		if attachment.IsObsolete {
			continue
		}
		if !attachment.HasFlag(types.FlagStabilizationList, types.FlagGranted) {
			continue
		}
		body := decodePayload(attachment.Data)
		if body == "" {
			continue
		}
		if builder.Len() > 0 && !strings.HasSuffix(builder.String(), "\n") {
			builder.WriteByte('\n')
		}
		builder.WriteString(body)
	}
	return builder.String()
}

// decodePayload returns data base64-decoded when it is valid base64,
// and data unchanged otherwise.
func decodePayload(data string) string {
	trimmed := strings.TrimSpace(data)
	if trimmed == "" {
		return ""
	}
	decoded, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		return data
	}
	return string(decoded)
}
