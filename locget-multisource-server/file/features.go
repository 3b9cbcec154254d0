package file

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/googlegenomics/locget/locget-multisource-server/model"

	"github.com/googlegenomics/locget/internal/featab"
	"github.com/googlegenomics/locget/locations"
	"github.com/googlegenomics/locget/spans"

	"github.com/gin-gonic/gin"
	"github.com/googlegenomics/locget/locget-multisource-server/utils"
)

//NewFeaturesHandler builds a gin handler that serves feature tickets from
//annotation tables stored under directory.
func NewFeaturesHandler(directory string, spanSize uint64, baseURL string) func(c *gin.Context) {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.String(400, "Error parsing params")
			return
		}

		name := c.Query("name")
		if err := utils.ValidateName(name); err != nil {
			c.String(400, "Invalid feature name")
			return
		}

		f, err := os.Open(directory + "/" + id + ".features.tsv")

		if err != nil {
			c.String(400, "Error finding the file")
			return
		}
		defer f.Close()

		loc, err := featab.Lookup(f, name)
		if err != nil {
			if _, ok := err.(*featab.NotFoundError); ok {
				c.String(404, "Feature not found")
				return
			}
			c.String(400, "Error parsing file")
			return
		}

		resp := model.FeatureResponse{}
		resp.Feature.Name = name
		resp.Feature.Location = loc.String()
		resp.Feature.Start = loc.Start().Value
		resp.Feature.End = loc.End().Value
		resp.Feature.Strand = loc.Strand().String()
		resp.Feature.Length = loc.Len()

		if locations.BridgesOrigin(loc) {
			lower, upper, err := locations.SplitBridging(loc)
			if err != nil {
				c.String(400, "Error splitting location")
				return
			}
			resp.Feature.BridgesOrigin = true
			for _, part := range lower {
				resp.Feature.Lower = append(resp.Feature.Lower, part.String())
			}
			for _, part := range upper {
				resp.Feature.Upper = append(resp.Feature.Upper, part.String())
			}
		}

		merged := spans.Merge(spans.ForLocation(loc), spanSize)
		resp.Feature.Urls = make([]model.URL, len(merged))

		for i, s := range merged {
			start := strconv.FormatInt(s.Start, 10)
			end := strconv.FormatInt(s.End, 10)
			resp.Feature.Urls[i] = model.URL{
				Url: baseURL + "/span/" + id + "?start=" + start + "&end=" + end,
			}
		}

		enc := json.NewEncoder(c.Writer)
		enc.SetEscapeHTML(false)
		c.Header("Content-Type", "application/json")
		c.Status(200)
		err = enc.Encode(&resp)
		if err != nil {
			c.String(400, "Error generating result")
			return
		}
	}
}
