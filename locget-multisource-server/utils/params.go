package utils

import (
	"fmt"
	"strconv"

	"github.com/googlegenomics/locget/spans"
)

//SpanParams extracts the sequence ID and the requested byte span from params.
func SpanParams(params map[string]string) (spans.Span, string, error) {

	span := spans.Span{}
	id := params["id"]
	if id == "" {
		return span, "", fmt.Errorf("invalid ID")
	}
	start := params["start"]
	end := params["end"]
	if start != "" {
		n, err := strconv.ParseInt(start, 10, 64)
		if err != nil || n < 0 {
			return span, "", fmt.Errorf("invalid Start")
		}
		span.Start = n
	}

	if end != "" {
		n, err := strconv.ParseInt(end, 10, 64)
		if err != nil || n < span.Start {
			return span, "", fmt.Errorf("invalid End")
		}
		span.End = n
	}
	return span, id, nil
}
