package resources

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/npillmayer/retrofont/core"
	"github.com/npillmayer/schuko"
)

// DefaultAppKey is the name of the application's folder in the user's cache
// directory, if the configuration does not set 'app-key'.
const DefaultAppKey = "retrofont"

// DownloadCachedFile will download a url to a local file (usually located in the
// user's cache directory).
func DownloadCachedFile(fpath string, url string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return core.Error(core.EMISSING, "download of %s failed: %s", url, resp.Status)
	}
	out, err := os.Create(fpath)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err = io.Copy(out, resp.Body); err != nil {
		os.Remove(fpath)
		return err
	}
	return nil
}

// CacheDirPath checks and possibly creates a folder in the user's cache
// directory. The base cache directory is taken from `os.UserCacheDir()`, plus
// an application specific key, taken as `app-key` from the configuration.
// Clients may specify a sequence of folder names, which will be appended to
// the base cache path. Non-existing sub-folders will be created as necessary
// (with permissions 755).
func CacheDirPath(conf schuko.Configuration, subfolders ...string) (string, error) {
	cachedir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	subs := filepath.Join(subfolders...)
	cachedir = filepath.Join(cachedir, appKey(conf), subs)
	tracer().Infof("caching in %s", cachedir)
	_, err = os.Stat(cachedir)
	if os.IsNotExist(err) {
		err = os.MkdirAll(cachedir, 0755)
		if err != nil {
			return "", fmt.Errorf("cannot create cache directory: %w", err)
		}
	}
	return cachedir, nil
}

func appKey(conf schuko.Configuration) string {
	if conf != nil {
		if key := conf.GetString("app-key"); key != "" {
			return key
		}
	}
	return DefaultAppKey
}
