package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/knowledge-map/internal/fetch"
	"github.com/pdiddy/knowledge-map/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultDelay     = 1 * time.Second
	defaultUserAgent = "knowledge-map/0.1"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [urls...]",
	Short: "Download video transcripts from YouTube URLs",
	Long: `Fetch resolves YouTube URLs (watch, youtu.be, embed, shorts) to video
IDs, downloads the caption track for each, and writes raw transcript YAML
files under transcripts/raw/. Existing transcripts are skipped.

URLs come from the command line or from a list file (--file), one URL per
line with # comments.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("file", "", "path to a URL list file (one URL per line)")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	fetchCmd.Flags().Duration("delay", 0, "delay between consecutive downloads (default 1s)")
	fetchCmd.Flags().String("language", "en", "caption language code")
	fetchCmd.Flags().String("transcripts-dir", "transcripts", "base directory for transcripts")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	urls := args
	if listFile, _ := cmd.Flags().GetString("file"); listFile != "" {
		fromFile, err := readURLList(listFile)
		if err != nil {
			return err
		}
		urls = append(urls, fromFile...)
	}
	if len(urls) == 0 {
		return fmt.Errorf("provide one or more video URLs or a --file list")
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	delay, _ := cmd.Flags().GetDuration("delay")
	if delay == 0 {
		delay = defaultDelay
	}
	language, _ := cmd.Flags().GetString("language")
	transcriptsDir, _ := cmd.Flags().GetString("transcripts-dir")

	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		FetchDelay:     delay,
		Language:       language,
		TranscriptsDir: transcriptsDir,
	}

	client := &http.Client{
		Timeout: cfg.Timeout,
	}

	result := fetch.FetchBatch(context.Background(), client, urls, cfg, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d video(s) failed transcript fetch", result.Failed)
	}
	return nil
}

// readURLList reads a URL list file: one URL per line, blank lines and
// #-comments ignored.
func readURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading URL list: %w", err)
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading URL list: %w", err)
	}
	return urls, nil
}
