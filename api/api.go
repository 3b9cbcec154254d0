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

// Package api implements the feature location retrieval API.
//
// The API serves three endpoints: /features/<bucket>/<object> returns a JSON
// ticket describing a named feature of an annotation table together with the
// URLs of its sequence spans, /span/<bucket>/<object> streams the bytes of
// one such span, and /locations/ answers stateless location algebra queries.
package api

import (
	"bytes"
	"encoding/base64"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/googlegenomics/locget/internal/analytics"
	"github.com/googlegenomics/locget/locations"
	"github.com/googlegenomics/locget/spans"
)

const (
	featuresPath  = "/features/"
	spanPath      = "/span/"
	locationsPath = "/locations/"
)

var (
	errInvalidOrUnspecifiedID = errors.New("invalid or unspecified ID")
	errMissingFeatureName     = errors.New("no feature name specified")
	errMissingLocation        = errors.New("no location specified")
	errMissingProteinBound    = errors.New("protein range requires both start and end")
	errMissingOrInvalidToken  = errors.New("missing or invalid token")
)

// NewStorageClientFunc is the type of function that constructs the appropriate
// storage.Client to satisfy the incoming request. Any headers that caused this
// particular client to be created are returned to allow span requests to be
// generated correctly.
type NewStorageClientFunc func(*http.Request) (Client, http.Header, error)

// Server provides a feature location retrieval server.  Must be created with
// NewServer.
type Server struct {
	newStorageClient NewStorageClientFunc
	spanSizeLimit    uint64
	whitelist        map[string]bool
}

// NewServer returns a new Server configured to use newStorageClient and
// spanSizeLimit. The server will call newStorageClient on each request to
// determine which GCS storage client to use.
func NewServer(newStorageClient NewStorageClientFunc, spanSizeLimit uint64) *Server {
	return &Server{newStorageClient, spanSizeLimit, make(map[string]bool)}
}

// Whitelist adds buckets to the set of buckets which the server is allowed to
// access. If Whitelist is never called for a given Server then reads from any
// bucket are allowed.
func (server *Server) Whitelist(buckets []string) {
	for _, bucket := range buckets {
		server.whitelist[bucket] = true
	}
}

// Export registers the API endpoints with mux. Feature tickets contain one
// span URL per contiguous coordinate range; abutting ranges are merged as
// long as the merged span does not exceed spanSizeLimit bytes, though single
// ranges that already exceed this size are not split.
func (server *Server) Export(mux *http.ServeMux) {
	mux.Handle(featuresPath, forwardOrigin(server.serveFeatures))
	mux.Handle(spanPath, forwardOrigin(server.serveSpans))
	mux.Handle(locationsPath, forwardOrigin(server.serveLocations))
}

func (server *Server) serveFeatures(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	track := analytics.TrackerFromContext(ctx)
	track(analytics.Event("Features", "Feature Request Received", "", nil))

	query := req.URL.Query()
	name := query.Get("name")
	if name == "" {
		writeError(w, newInvalidInputError("parsing feature name", errMissingFeatureName))
		return
	}

	bucket, object, err := parseID(req.URL.Path[len(featuresPath):])
	if err != nil {
		writeError(w, newInvalidInputError("parsing table ID", err))
		return
	}

	if err := server.checkWhitelist(bucket); err != nil {
		writeError(w, newPermissionDeniedError("checking whitelist", err))
		return
	}

	gcs, headers, err := server.newStorageClient(req)
	if err != nil {
		writeError(w, newStorageError("creating client", err))
		return
	}

	request := &featureRequest{
		tableObjects: []ObjectHandle{
			gcs.NewObjectHandle(bucket, object+".features.tsv"),
			gcs.NewObjectHandle(bucket, object),
		},
		name: name,
	}

	loc, err := request.handle(ctx)
	if err != nil {
		track(analytics.Event("Features", "Feature Internal Error", "", nil))
		writeError(w, err)
		return
	}

	summary, err := summarize(loc, query)
	if err != nil {
		writeError(w, err)
		return
	}
	summary["name"] = name

	var base string
	if req.Host != "" {
		if req.TLS != nil {
			base = "https://"
		} else {
			base = "http://"
		}
		base += req.Host
	}
	base += strings.Replace(req.URL.Path, featuresPath, spanPath, 1)

	merged := spans.Merge(spans.ForLocation(loc), server.spanSizeLimit)

	var urls []map[string]interface{}
	for _, s := range merged {
		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(s); err != nil {
			writeError(w, fmt.Errorf("encoding span: %v", err))
			return
		}

		url := map[string]interface{}{
			"url": fmt.Sprintf("%s?%s", base, base64.URLEncoding.EncodeToString(buf.Bytes())),
		}
		if len(headers) > 0 {
			// Span requests carry each header with a single value.
			flattened := make(map[string]string)
			for k, v := range headers {
				flattened[k] = v[0]
			}
			url["headers"] = flattened
		}
		urls = append(urls, url)
	}
	summary["urls"] = urls

	writeJSON(w, http.StatusOK, map[string]interface{}{"feature": summary})

	count := int64(len(urls))
	track(analytics.Event("Features", "Feature Response URL Count", "", &count))
	track(analytics.Event("Features", "Feature Response Sent", "", nil))
}

func (server *Server) serveSpans(w http.ResponseWriter, req *http.Request) {
	bucket, object, err := parseID(req.URL.Path[len(spanPath):])
	if err != nil {
		writeError(w, newInvalidInputError("parsing table ID", err))
		return
	}

	if err := server.checkWhitelist(bucket); err != nil {
		writeError(w, newPermissionDeniedError("checking whitelist", err))
		return
	}

	var s spans.Span
	if err := decodeRawQuery(req.URL.RawQuery, &s); err != nil {
		writeError(w, fmt.Errorf("decoding raw query: %v", err))
		return
	}

	gcs, _, err := server.newStorageClient(req)
	if err != nil {
		writeError(w, fmt.Errorf("creating storage client: %v", err))
		return
	}

	request := &spanRequest{
		sequenceObjects: []ObjectHandle{
			gcs.NewObjectHandle(bucket, object+".seq"),
			gcs.NewObjectHandle(bucket, strings.TrimSuffix(object, ".features.tsv")+".seq"),
		},
		span: s,
	}

	response, err := request.handle(req.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	defer response.Close()

	w.Header().Add("Content-type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, response); err != nil {
		log.Printf("Failed to copy response: %v", err)
		return
	}
}

func (server *Server) serveLocations(w http.ResponseWriter, req *http.Request) {
	track := analytics.TrackerFromContext(req.Context())
	track(analytics.Event("Locations", "Locations Request Received", "", nil))

	query := req.URL.Query()
	texts := query["location"]
	if len(texts) == 0 {
		writeError(w, newInvalidInputError("parsing location", errMissingLocation))
		return
	}

	locs := make([]locations.Location, 0, len(texts))
	for _, text := range texts {
		loc, err := locations.Parse(text)
		if err != nil {
			writeError(w, newInvalidInputError("parsing location", err))
			return
		}
		locs = append(locs, loc)
	}

	loc := locs[0]
	if len(locs) > 1 {
		combined, err := locations.Combine(locs...)
		if err != nil {
			writeError(w, newInvalidRangeError(err))
			return
		}
		loc = combined
	}

	summary, err := summarize(loc, query)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"location": summary})

	track(analytics.Event("Locations", "Locations Response Sent", "", nil))
}

// summarize describes loc as a JSON friendly map: its canonical text,
// bounds, strand, length and origin bridging analysis, plus the mapped DNA
// range when query carries a protein range.
func summarize(loc locations.Location, query url.Values) (map[string]interface{}, error) {
	summary := map[string]interface{}{
		"location": loc.String(),
		"start":    loc.Start().Value,
		"end":      loc.End().Value,
		"strand":   loc.Strand().String(),
		"length":   loc.Len(),
	}

	if locations.BridgesOrigin(loc) {
		lower, upper, err := locations.SplitBridging(loc)
		if err != nil {
			return nil, fmt.Errorf("splitting location: %v", err)
		}
		summary["bridgesOrigin"] = true
		summary["lower"] = segmentStrings(lower)
		summary["upper"] = segmentStrings(upper)
	} else {
		summary["bridgesOrigin"] = false
	}

	proteinStart, proteinEnd, ok, err := parseProteinRange(query)
	if err != nil {
		return nil, newInvalidInputError("parsing protein range", err)
	}
	if ok {
		dnaStart, dnaEnd, err := locations.ProteinToDNA(proteinStart, proteinEnd, loc)
		if err != nil {
			return nil, newInvalidRangeError(err)
		}
		summary["proteinStart"] = proteinStart
		summary["proteinEnd"] = proteinEnd
		summary["dnaStart"] = dnaStart
		summary["dnaEnd"] = dnaEnd
	}
	return summary, nil
}

func segmentStrings(parts []locations.Segment) []string {
	texts := make([]string, len(parts))
	for i, part := range parts {
		texts[i] = part.String()
	}
	return texts
}

func (server *Server) checkWhitelist(bucket string) error {
	if len(server.whitelist) == 0 || server.whitelist[bucket] {
		return nil
	}
	return fmt.Errorf("access to bucket %s is not allowed", bucket)
}

func decodeRawQuery(rawQuery string, v interface{}) error {
	b, err := base64.URLEncoding.DecodeString(rawQuery)
	if err != nil {
		return fmt.Errorf("base64: %v", err)
	}

	if err := gob.NewDecoder(bytes.NewBuffer(b)).Decode(v); err != nil {
		return fmt.Errorf("gob: %v", err)
	}

	return nil
}

// parseID parses path and returns a GCS bucket and object, or an error.
func parseID(path string) (string, string, error) {
	if parts := strings.SplitN(path, "/", 2); len(parts) == 2 {
		if parts[0] != "" && parts[1] != "" {
			return parts[0], parts[1], nil
		}
	}
	return "", "", errInvalidOrUnspecifiedID
}

// parseProteinRange reads the optional proteinStart and proteinEnd query
// parameters. Supplying only one of the two is an error.
func parseProteinRange(query url.Values) (start, end int, ok bool, err error) {
	var (
		startText = query.Get("proteinStart")
		endText   = query.Get("proteinEnd")
	)
	if startText == "" && endText == "" {
		return 0, 0, false, nil
	}
	if startText == "" || endText == "" {
		return 0, 0, false, errMissingProteinBound
	}

	start, err = strconv.Atoi(startText)
	if err != nil {
		return 0, 0, false, fmt.Errorf("parsing protein start: %v", err)
	}
	end, err = strconv.Atoi(endText)
	if err != nil {
		return 0, 0, false, fmt.Errorf("parsing protein end: %v", err)
	}
	return start, end, true, nil
}

// apiError is used to capture errors that have been defined in the API.
type apiError struct {
	name  string
	code  int
	cause error
}

func (err *apiError) Error() string {
	return fmt.Sprintf("%s (%d): %v", err.name, err.code, err.cause)
}

func newApiError(name string, code int, context string, err error) error {
	return &apiError{name, code, fmt.Errorf("%s: %v", context, err)}
}

func newInvalidAuthenticationError(context string, err error) error {
	return newApiError("InvalidAuthentication", http.StatusUnauthorized, context, err)
}

func newInvalidInputError(context string, err error) error {
	return newApiError("InvalidInput", http.StatusBadRequest, context, err)
}

func newInvalidRangeError(err error) error {
	return &apiError{"InvalidRange", http.StatusBadRequest, err}
}

func newPermissionDeniedError(context string, err error) error {
	return newApiError("PermissionDenied", http.StatusForbidden, context, err)
}

func newNotFoundError(context string, err error) error {
	return newApiError("NotFound", http.StatusNotFound, context, err)
}

// writeError writes either a JSON object or bare HTTP error describing err to
// w.  A JSON object is written only when the error has a name and code defined
// by the API.
func writeError(w http.ResponseWriter, err error) {
	if err, ok := err.(*apiError); ok {
		writeJSON(w, err.code, map[string]interface{}{
			"error":   err.name,
			"message": fmt.Sprintf("%s: %v", http.StatusText(err.code), err.cause),
		})
		return
	}

	writeHTTPError(w, http.StatusInternalServerError, err)
}

func writeHTTPError(w http.ResponseWriter, code int, err error) {
	http.Error(w, fmt.Sprintf("%s: %v", http.StatusText(code), err), code)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Add("Content-type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

type forwardOrigin func(w http.ResponseWriter, req *http.Request)

func (f forwardOrigin) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if origin := req.Header.Get("Origin"); origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
	}
	f(w, req)
}
