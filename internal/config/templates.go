package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "fieldtext":
		return fieldtextTemplate, nil
	case "minimal":
		return minimalTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const fieldtextTemplate = `[decoder]
max_input_bytes = 8388608

[render]
fallback = "raw"
base64_fields = ["reason"]

[[render.replacements]]
needle = "&amp;"
replacement = "&"

[[render.replacements]]
needle = "\u00A0"
replacement = " "

[pipeline]
workers = 4

[metrics]
textfile = ""
`

const minimalTemplate = `[render]
fallback = "fail"
`
