// feed-dump fetches the trajectory feed and prints a summary, useful for
// checking feed availability and format drift without starting the service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/chrissnell/isstracker/internal/ephemeris"
	"github.com/chrissnell/isstracker/internal/feed"
)

func main() {
	url := flag.String("url", feed.DefaultURL, "Trajectory feed URL")
	timeout := flag.Duration("timeout", 30*time.Second, "Fetch timeout")
	showComments := flag.Bool("comments", false, "Print feed comment lines")
	flag.Parse()

	fetcher := feed.NewFetcher(*url, *timeout)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	raw, err := fetcher.Fetch(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fetch failed: %v\n", err)
		os.Exit(1)
	}

	series, err := ephemeris.Parse(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("header keys:    %d\n", len(series.Header))
	fmt.Printf("metadata keys:  %d\n", len(series.Metadata))
	fmt.Printf("comments:       %d\n", len(series.Comments))
	fmt.Printf("state vectors:  %d\n", len(series.Vectors))
	if len(series.Vectors) > 0 {
		first := series.Vectors[0]
		last := series.Vectors[len(series.Vectors)-1]
		fmt.Printf("first epoch:    %s\n", ephemeris.FormatEpoch(first.Epoch))
		fmt.Printf("last epoch:     %s\n", ephemeris.FormatEpoch(last.Epoch))
		fmt.Printf("span:           %s\n", last.Epoch.Sub(first.Epoch))
	}
	for k, v := range series.Metadata {
		fmt.Printf("metadata:       %s = %s\n", k, v)
	}

	if *showComments {
		for _, c := range series.Comments {
			fmt.Printf("comment:        %s\n", c)
		}
	}
}
