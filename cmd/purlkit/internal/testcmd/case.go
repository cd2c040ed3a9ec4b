package testcmd

import "net/http"

type Case struct {
	Name string
	Args []string
	Exit int

	// ReplaceRules are only used for JSON output
	ReplaceRules []JSONReplaceRule

	// HTTPClient is used for any network requests made by the command,
	// typically backed by a cassette recorder
	HTTPClient *http.Client
}

func (c Case) isOutputtingJSON() bool {
	for i, arg := range c.Args {
		if arg == "--format=json" {
			return true
		}

		if arg == "--format" && i+1 < len(c.Args) && c.Args[i+1] == "json" {
			return true
		}
	}

	return false
}
