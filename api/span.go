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

package api

import (
	"context"
	"io"

	"github.com/googlegenomics/locget/spans"
)

type spanRequest struct {
	sequenceObjects []ObjectHandle
	span            spans.Span
}

func (req *spanRequest) handle(ctx context.Context) (io.ReadCloser, error) {
	s := req.span
	if s.Start < 0 || s.End < s.Start {
		return nil, newInvalidInputError("checking span", spans.ErrInvalidBounds)
	}

	var sequence io.ReadCloser
	var err error
	for _, object := range req.sequenceObjects {
		sequence, err = object.NewRangeReader(ctx, s.Start, s.End-s.Start)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, newStorageError("opening sequence", err)
	}
	return sequence, nil
}
