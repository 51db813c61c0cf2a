package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/discontent/discontent/internal/utils"
	"github.com/discontent/discontent/pkg/api"
	"github.com/discontent/discontent/pkg/engines"
	"github.com/discontent/discontent/pkg/storage"
	"github.com/discontent/discontent/pkg/whttp"
)

func newHTTPClient(cmd *cobra.Command) (*retryablehttp.Client, error) {
	proxy, _ := cmd.Flags().GetString("proxy")
	return whttp.NewClient(whttp.ClientOptions{
		Timeout:  viper.GetDuration("http.timeout"),
		RetryMax: viper.GetInt("http.retries"),
		Proxy:    proxy,
	})
}

func newAPIClient(cmd *cobra.Command) (*api.Client, error) {
	hc, err := newHTTPClient(cmd)
	if err != nil {
		return nil, err
	}
	return api.NewClient(viper.GetString("api.endpoint"), hc), nil
}

// settingsDBPath resolves --dbpath, then settings.path, then the default.
func settingsDBPath(cmd *cobra.Command) (string, error) {
	dbPath, _ := cmd.Flags().GetString("dbpath")
	if dbPath == "" {
		dbPath = viper.GetString("settings.path")
	}
	return utils.GetAbsDBPath(dbPath)
}

func openSettingsDB(cmd *cobra.Command) (*storage.DB, error) {
	dbPath, err := settingsDBPath(cmd)
	if err != nil {
		return nil, err
	}
	return storage.Open(dbPath)
}

// withSettingsLock runs fn while holding the settings database lock.
func withSettingsLock(cmd *cobra.Command, fn func(db *storage.DB) error) error {
	dbPath, err := settingsDBPath(cmd)
	if err != nil {
		return err
	}
	lock, err := utils.NewDBLock(dbPath)
	if err != nil {
		return err
	}
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	db, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

// loadPage reads a results page either from an http(s) URL or from a local
// file. Local files need pageURL to know which engine produced them.
func loadPage(ctx context.Context, source, pageURL string, client *retryablehttp.Client) (*engines.Page, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		res, err := whttp.SendHTTPRequest(ctx, &whttp.WHTTPReq{Method: http.MethodGet, URL: source}, client)
		if err != nil {
			return nil, err
		}
		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetching %s: status %d", source, res.StatusCode)
		}
		if pageURL == "" {
			pageURL = source
		}
		return engines.NewPage(pageURL, strings.NewReader(res.BodyString))
	}

	if pageURL == "" {
		return nil, fmt.Errorf("--page-url is required when reading %s from disk", source)
	}
	var r io.Reader = os.Stdin
	if source != "-" {
		f, err := os.Open(source)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return engines.NewPage(pageURL, r)
}

func newExtractor(client *retryablehttp.Client) *engines.Extractor {
	return &engines.Extractor{
		Resolver:    engines.NewHTTPResolver(client),
		Concurrency: viper.GetInt("resolver.concurrency"),
		Log:         utils.Log,
	}
}
