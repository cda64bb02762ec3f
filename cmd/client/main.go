package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"gitlab.com/dirk.krummacker/contact-book/internal/model"
)

var sample = model.Contact{Name: "王小明", Phone: "0912-345-678", Company: "測試科技", Email: "wang@test.com"}

// Usage example on the command line:
// > go run main.go -url=http://localhost:8080 -sizes=100,500,1000,5000
func main() {
	baseURL := flag.String("url", "http://localhost:8080", "base URL of the contacts service")
	sizesFlag := flag.String("sizes", "100,500,1000,5000", "comma separated number of requests per round")
	flag.Parse()

	sizes, err := parseSizes(*sizesFlag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	b := &bench{baseURL: strings.TrimSuffix(*baseURL, "/"), client: http.DefaultClient}

	fmt.Println()
	fmt.Println("  Elements      POST       PUT      LIST    DELETE ")
	fmt.Println("---------------------------------------------------")
	for _, loops := range sizes {
		round, err := b.round(loops)
		if err != nil {
			fmt.Println()
			fmt.Println("benchmark aborted:", err)
			os.Exit(1)
		}
		fmt.Printf("%10d%10d%10d%10d%10d\n", loops, round.post, round.put, round.list, round.delete)
	}
}

// parseSizes reads a list like "100,500".
func parseSizes(s string) ([]int, error) {
	var sizes []int
	for _, field := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid size %q", field)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}

// timings holds the mean duration per request in microseconds.
type timings struct {
	post, put, list, delete int64
}

type bench struct {
	baseURL string
	client  *http.Client
}

// round creates loops contacts, replaces them in random order, lists the book loops times and
// deletes the created contacts again in random order.
func (b *bench) round(loops int) (timings, error) {
	var t timings
	ids := make([]int64, 0, loops)
	var total time.Duration
	for i := 0; i < loops; i++ {
		id, d, err := b.create(sample)
		if err != nil {
			return t, err
		}
		ids = append(ids, id)
		total += d
	}
	t.post = mean(total, loops)

	rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	total = 0
	for _, id := range ids {
		d, err := b.send(http.MethodPut, b.contactURL(id), sample, http.StatusOK)
		if err != nil {
			return t, err
		}
		total += d
	}
	t.put = mean(total, loops)

	total = 0
	for i := 0; i < loops; i++ {
		d, err := b.send(http.MethodGet, b.baseURL+"/contacts", nil, http.StatusOK)
		if err != nil {
			return t, err
		}
		total += d
	}
	t.list = mean(total, loops)

	rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	total = 0
	for _, id := range ids {
		d, err := b.send(http.MethodDelete, b.contactURL(id), nil, http.StatusOK)
		if err != nil {
			return t, err
		}
		total += d
	}
	t.delete = mean(total, loops)
	return t, nil
}

func (b *bench) contactURL(id int64) string {
	return fmt.Sprintf("%s/contacts/%d", b.baseURL, id)
}

// create posts contact and returns the id the service assigned.
func (b *bench) create(contact model.Contact) (int64, time.Duration, error) {
	body, d, err := b.do(http.MethodPost, b.baseURL+"/contacts", contact, http.StatusCreated)
	if err != nil {
		return 0, 0, err
	}
	var created model.Contact
	if err := json.Unmarshal(body, &created); err != nil {
		return 0, 0, fmt.Errorf("could not unmarshal created contact: %w", err)
	}
	return created.Id, d, nil
}

func (b *bench) send(method, url string, payload any, want int) (time.Duration, error) {
	_, d, err := b.do(method, url, payload, want)
	return d, err
}

// do sends one request and measures the time until the response body has been read.
func (b *bench) do(method, url string, payload any, want int) ([]byte, time.Duration, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, err
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	res, err := b.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, 0, err
	}
	elapsed := time.Since(start)
	if res.StatusCode != want {
		return nil, 0, fmt.Errorf("%s %s: %s", method, url, res.Status)
	}
	return body, elapsed, nil
}

func mean(total time.Duration, n int) int64 {
	return total.Microseconds() / int64(n)
}
