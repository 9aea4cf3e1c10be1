package stats

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

func download(url string, timeout time.Duration) ([]byte, error) {
	fmt.Printf("Download: '%s'\n", url)

	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}
