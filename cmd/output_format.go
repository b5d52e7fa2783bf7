package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// outputFormat --output-format kalıcı bayrağının değeridir; root init'te
// kaydedilir.
var outputFormat string

const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// NormalizeOutputFormat biçim adını kanonik forma çevirir; tanınmayan değer
// için boş string döner. Boş giriş text sayılır.
func NormalizeOutputFormat(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		return OutputFormatText
	}
	if f == OutputFormatText || f == OutputFormatJSON {
		return f
	}
	return ""
}

// resolveOutputFormat aktif bayrağı doğrular ve kanonik halini döner.
func resolveOutputFormat() (string, error) {
	f := NormalizeOutputFormat(outputFormat)
	if f == "" {
		return "", fmt.Errorf("gecersiz output-format: %s (text|json)", outputFormat)
	}
	return f, nil
}

func isJSONOutput() bool {
	return NormalizeOutputFormat(outputFormat) == OutputFormatJSON
}

func printJSON(payload any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
