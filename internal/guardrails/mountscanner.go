package guardrails

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/0xa1bed0/dloenv/internal/logs"
)

// Suspicious file indicators
var suspiciousFilenames = []string{
	"id_rsa", "id_dsa", "id_ecdsa", "id_ed25519",
	"credentials.json", "auth.json", "vault.json",
	"token", "secrets", "apikey", "api_key", "access_token",
	"aws_credentials", "gcloud.json", "netrc",
	".env", ".env.production", ".env.development",
	".npmrc", ".pypirc", ".dockercfg", ".dockerconfigjson",
	".git-credentials", ".git_token", "secrets.env", ".secrets",
	".vault-token", "kubeconfig", "kube_config.yaml",
}

var suspiciousContentRegexps = []*regexp.Regexp{
	// --- Private keys / SSH ---
	regexp.MustCompile(`-----BEGIN [A-Z ]*PRIVATE KEY-----`),
	regexp.MustCompile(`ssh-(rsa|ed25519|dss) `),

	// --- GitHub / GitLab ---
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9]{36}`),
	regexp.MustCompile(`glpat-[A-Za-z0-9\-]{20,}`),

	// --- Slack ---
	regexp.MustCompile(`xox[baprs]-[0-9A-Za-z]{10,48}`),

	// --- AWS ---
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	regexp.MustCompile(`(?i)aws(.{0,20})?(secret|key)[^A-Za-z0-9]{0,3}[A-Za-z0-9/+]{40}`),

	// --- Google / GCP ---
	regexp.MustCompile(`AIza[0-9A-Za-z\-_]{35}`),

	// --- Postgres/MySQL/Mongo/Redis connection strings ---
	regexp.MustCompile(`(?i)\b(postgres(ql)?|mysql|mongodb(\+srv)?|redis)://[^ \n'"]+`),

	// --- JWT (only real 3-part JWTs) ---
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{20,}\.[A-Za-z0-9_-]{20,}\.[A-Za-z0-9_-]{20,}`),
}

var ignoredDirs = map[string]bool{
	".git":        true,
	".venv":       true,
	".tox":        true,
	"__pycache__": true,
	"dist":        true,
	"build":       true,
	".snakemake":  true,
	".nextflow":   true,
	"work":        true,
	".cache":      true,
	".idea":       true,
	".vscode":     true,
}

const maxFileSizeForScan = 5 * 1024 * 1024 // 5 MB

type SensitivityWarning struct {
	Path    string
	Reason  string
	Content []string
}

var ErrScanCanceled = errors.New("scan canceled")

// ScanSuspiciousFiles walks a bind-mount source tree and reports files
// that appear suspicious by name or content.
func ScanSuspiciousFiles(ctx context.Context, root string) ([]*SensitivityWarning, error) {
	suspicious := []*SensitivityWarning{}
	tailBox := logs.NewTailBox("Files scanner")
	defer tailBox.Close()

	// helper to keep ctx checks short + consistent
	checkCtx := func() error {
		if err := ctx.Err(); err != nil {
			return ErrScanCanceled
		}
		return nil
	}

	// in case ctx is already canceled
	if err := checkCtx(); err != nil {
		return nil, err
	}

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable paths
		}

		if ctxErr := checkCtx(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			base := filepath.Base(path)
			if ignoredDirs[base] {
				tailBox.Printf("Skipping %s folder", base)
				return filepath.SkipDir
			}
			return nil
		}

		tailBox.Printf("Check filename %s if it potentially sensitive...", path)

		lower := strings.ToLower(filepath.Base(path))
		for _, name := range suspiciousFilenames {
			if strings.Contains(lower, name) {
				suspicious = append(suspicious, &SensitivityWarning{
					Path:   path,
					Reason: "Filename indicates potential sensitivity",
				})
				return nil
			}
		}

		info, err := d.Info()
		if err != nil || info.Size() > maxFileSizeForScan {
			return nil
		}

		tailBox.Printf("Check if %s has potentially sensitive data...", path)

		f, err := os.Open(path)
		if err != nil {
			return nil
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), int(maxFileSizeForScan))
		previousLine := ""
		for scanner.Scan() {
			line := scanner.Text()
			if !utf8.ValidString(line) {
				continue
			}
			for _, re := range suspiciousContentRegexps {
				if re.MatchString(line) {
					// Peek one line ahead (only if it exists)
					nextLine := ""
					if scanner.Scan() {
						nextLine = scanner.Text()
						if !utf8.ValidString(nextLine) {
							nextLine = ""
						}
					}

					suspicious = append(suspicious, &SensitivityWarning{
						Path:   path,
						Reason: fmt.Sprintf("file contains potentially sensitive data: %s", re.String()),
						Content: []string{
							previousLine,
							line,
							nextLine,
						},
					})
					return nil
				}
			}
			previousLine = line
		}
		return nil
	})
	return suspicious, err
}
