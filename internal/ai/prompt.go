package ai

import (
	"fmt"
	"strings"

	"github.com/stickify/stickify-e2e/internal/pages"
	sp "github.com/stickify/stickify-e2e/internal/screenplay"
)

const systemTemplate = `You write end-to-end browser scenarios for Stickify, a music web app, as YAML.

You will receive:
1. A page map containing the URL, title and interactive elements of the starting page
2. A user request describing the journey to test

Output ONE YAML document with this shape:

name: short scenario name
actor: a person's first name
abilities: [upload songs]    # optional; any of: %s
steps:
  - open: /log-in                                   # route or absolute URL
  - enter: {text: pol@correo.com, into: login.email}
  - enter: {text: pol123, into: login.password, secret: true}
  - click: login.submit
  - wait: {for: alert.ok, within: 10s}              # to: appear (default) or disappear; or text: ...
  - see: {text: alert.message, contains: bienvenido}
  - see: {url: true, contains: home, eventually: true}

Every step holds exactly ONE instruction:
- open, click, clear, hover, scroll_to, enter, upload {files, into}, wait, pause (e.g. 500ms)
- see: ONE question (text: <target>, visible: <target>, count: <target>, url: true, title: true, role: true)
  and ONE expectation (contains, contains_exact, not_contains, equals; is for visible; exactly or at_least for count).
  Add eventually: true when the page needs time to change.
- Shortcuts: login {email, password}, upload_song {artist, track, album, genre, cover}, create_playlist: <name>, dismiss_alert: true

Targets MUST be names from this list, never raw selectors:
%s

Guidelines:
- Uploading songs needs the "upload songs" ability, creating playlists needs "manage playlists"
- Start from the page in the page map unless the request says otherwise
- End with at least one see step that proves the request worked
- Keep the sequence minimal but complete

Respond ONLY with the YAML, no explanation or markdown.`

const repairTemplate = `Your previous scenario was rejected.

Previous scenario:
%s

Problem:
%v

Original user request: %s

Return the corrected scenario. Respond ONLY with the YAML, no explanation or markdown.`

// markerNames lists the abilities a scenario may grant
func markerNames() []string {
	var names []string
	for _, k := range sp.Kinds() {
		if k == sp.BrowseTheWeb || k == sp.InteractWithAPI {
			continue
		}
		names = append(names, string(k))
	}
	return names
}

func systemPrompt() string {
	return fmt.Sprintf(systemTemplate, strings.Join(markerNames(), ", "), "- "+strings.Join(pages.Names(), "\n- "))
}

func buildUserPrompt(pageMapJSON string, userPrompt string) string {
	return "Page map:\n" + pageMapJSON + "\n\nUser request: " + userPrompt
}

func buildRepairPrompt(pageMapJSON, originalPrompt, previous string, problem error) string {
	return "Page map:\n" + pageMapJSON + "\n\n" + fmt.Sprintf(repairTemplate, previous, problem, originalPrompt)
}
