/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/mikeb26/swisspair/internal"
)

// this program exists just to pre-warm the wallchart page cache so that
// pairctl invocations during a round don't wait on origin fetches

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %v <url> [<url> ...]\n", os.Args[0])
		os.Exit(1)
	}

	ctx := context.Background()
	client := internal.NewCachedHTTPClient(ctx, 15*time.Minute)

	for _, url := range os.Args[1:] {
		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			// best effort
			continue
		}
		req.Header.Set("User-Agent", internal.UserAgent)
		resp, err := client.Do(req)
		time.Sleep(2 * time.Second) // avoid pegging the origin
		if err != nil {
			// best effort
			continue
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		fmt.Printf("warmed %v\n", url)
	}
}
