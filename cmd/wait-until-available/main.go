package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-pkgz/repeater"
	"github.com/go-pkgz/repeater/strategy"
)

// Usage example on the command line:
// > go run main.go -url=http://localhost:8080/contacts -attempts=12
func main() {
	url := flag.String("url", "http://localhost:8080/contacts", "endpoint that answers OK once the service is up")
	attempts := flag.Int("attempts", 12, "how many times to ask before giving up")
	delay := flag.Duration("delay", 2*time.Second, "wait time before the second attempt, growing with every further one")
	flag.Parse()

	try := 0
	rptr := repeater.New(&strategy.Backoff{Repeats: *attempts, Duration: *delay, Factor: 1.5})
	err := rptr.Do(context.Background(), func() error {
		try++
		res, err := http.Get(*url)
		if err != nil {
			fmt.Printf("attempt %d: %v\n", try, err)
			return err
		}
		res.Body.Close()
		if res.StatusCode != http.StatusOK {
			fmt.Printf("attempt %d: %s\n", try, res.Status)
			return errors.New(res.Status)
		}
		fmt.Printf("attempt %d: %s\n", try, res.Status)
		return nil
	})
	if err != nil {
		fmt.Println("service not available:", err)
		os.Exit(1)
	}
}
