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
	"fmt"
	"io"

	"github.com/googlegenomics/locget/internal/featab"
	"github.com/googlegenomics/locget/locations"
)

type featureRequest struct {
	tableObjects []ObjectHandle
	name         string
}

func (req *featureRequest) handle(ctx context.Context) (locations.Location, error) {
	var table io.ReadCloser
	var err error
	for _, object := range req.tableObjects {
		table, err = object.NewRangeReader(ctx, 0, -1)
		if err == nil {
			break
		}
	}
	if err != nil {
		return locations.Location{}, newStorageError("opening table", err)
	}
	defer table.Close()

	loc, err := featab.Lookup(table, req.name)
	if err != nil {
		if _, ok := err.(*featab.NotFoundError); ok {
			return locations.Location{}, newNotFoundError("looking up feature", err)
		}
		return locations.Location{}, fmt.Errorf("reading table: %v", err)
	}
	return loc, nil
}
