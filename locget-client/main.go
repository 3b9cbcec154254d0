// Copyright 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// This binary provides a feature location client that supports Google
// authentication.  It fetches a feature ticket and then the sequence spans
// the ticket names, writing the concatenated bytes to a file or stdout.
package main

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/pkg/profile"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	scope = "https://www.googleapis.com/auth/devstorage.read_only"
)

var (
	name         = flag.String("n", "", "feature name")
	proteinStart = flag.Int("protein_start", -1, "protein range start (requires -protein_end)")
	proteinEnd   = flag.Int("protein_end", -1, "protein range end (requires -protein_start)")
	output       = flag.String("o", "", "output filename")
	cpuProfile   = flag.String("cpuprofile", "", "write a CPU profile to this directory")
)

func main() {
	flag.Parse()

	if *cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProfile)).Stop()
	}

	w := io.Writer(os.Stdout)
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("Failed to open output file: %v", err)
		}
		defer f.Close()

		w = f
	}

	ctx := context.Background()

	// For compatibility with other tools, read the standard cURL certificate
	// authority override from the environment.
	if bundle := os.Getenv("CURL_CA_BUNDLE"); bundle != "" {
		pem, err := ioutil.ReadFile(bundle)
		if err != nil {
			log.Fatalf("Failed to read CA override file %q: %v", bundle, err)
		}
		pool, err := x509.SystemCertPool()
		if err != nil {
			log.Fatalf("Failed to initialize system certificate pool: %v", err)
		}
		if !pool.AppendCertsFromPEM(pem) {
			log.Fatalf("Failed to add certificates from bundle %q", bundle)
		}
		ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					RootCAs: pool,
				}},
		})
		log.Printf("Using CA override bundle from %q", bundle)
	}

	client, err := google.DefaultClient(ctx, scope)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	for _, target := range flag.Args() {
		log.Printf("Fetching %q", target)
		if *name != "" {
			target = addParameter(target, "name", *name)
		}
		if *proteinStart >= 0 || *proteinEnd >= 0 {
			target = addParameter(target, "proteinStart", fmt.Sprintf("%d", *proteinStart))
			target = addParameter(target, "proteinEnd", fmt.Sprintf("%d", *proteinEnd))
		}
		resp, err := client.Get(target)
		if err != nil {
			log.Fatalf("Request failed: %v", err)
		}

		if resp.StatusCode != http.StatusOK {
			log.Fatalf("Unexpected response: %v", errorFromResponse(resp))
		}

		var ticket struct {
			Feature struct {
				Location string `json:"location"`
				Length   int    `json:"length"`
				URLs     []struct {
					URL     string            `json:"url"`
					Headers map[string]string `json:"headers"`
				} `json:"urls"`
			} `json:"feature"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&ticket); err != nil {
			log.Fatalf("Failed to decode response: %v", err)
		}

		log.Printf("Feature at %s covers %d bases in %d spans",
			ticket.Feature.Location, ticket.Feature.Length, len(ticket.Feature.URLs))

		for i, span := range ticket.Feature.URLs {
			r, err := fetchSpan(ctx, span.URL, span.Headers)
			if err != nil {
				log.Fatalf("Span %d: failed to fetch data: %v", i, err)
			}

			n, err := io.Copy(w, r)
			r.Close()
			if err != nil {
				log.Fatalf("Span %d: failed to copy data: %v", i, err)
			}
			log.Printf("Span %d: wrote %s", i, humanSize(n))
		}
	}
}

func addParameter(input, name, value string) string {
	values := url.Values{}
	values.Set(name, value)
	if strings.Contains(input, "?") {
		return input + "&" + values.Encode()
	}
	return input + "?" + values.Encode()
}

func humanSize(n int64) string {
	kb := n / 1024
	mb := kb / 1024
	gb := mb / 1024
	if gb > 1 {
		return fmt.Sprintf("%d GB", gb)
	}
	if mb > 1 {
		return fmt.Sprintf("%d MB", mb)
	}
	if kb > 1 {
		return fmt.Sprintf("%d KB", kb)
	}
	return fmt.Sprintf("%d bytes", n)
}

func fetchSpan(ctx context.Context, target string, headers map[string]string) (io.ReadCloser, error) {
	req, err := http.NewRequest("GET", target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %v", err)
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	client := http.DefaultClient
	if c, ok := ctx.Value(oauth2.HTTPClient).(*http.Client); ok {
		client = c
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching data: %v", err)
	}
	return resp.Body, nil
}

func errorFromResponse(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusBadRequest:
		v := make(map[string]string)
		if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
			return fmt.Errorf("bad request: parsing response body: %v", err)
		}
		if message, ok := v["message"]; ok {
			return fmt.Errorf("bad request: %v", message)
		}
	}
	return fmt.Errorf("unexpected response status: %q", resp.Status)
}
