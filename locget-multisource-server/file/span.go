package file

import (
	"io"
	"os"

	"github.com/googlegenomics/locget/sources/file"

	"github.com/googlegenomics/locget/spans"

	"github.com/gin-gonic/gin"
	"github.com/googlegenomics/locget/locget-multisource-server/utils"
)

//NewSpanHandler takes in a directory and returns a handler that streams the
//bytes of one sequence span.
func NewSpanHandler(directory string) func(c *gin.Context) {
	return func(c *gin.Context) {
		span, id, err := utils.SpanParams(map[string]string{
			"start": c.Query("start"),
			"end":   c.Query("end"),
			"id":    c.Param("id"),
		})

		if err != nil {
			c.String(400, "Error parsing params")
			return
		}

		f, err := os.Open(directory + "/" + id + ".seq")

		if err != nil {
			c.String(400, "Error finding the file")
			return
		}
		defer f.Close()

		readCloser, err := spans.Read(file.NewFileRangeReader(f), span)
		if err != nil {
			c.String(400, "Error reading file")
			return
		}
		defer readCloser.Close()

		c.Header("Content-Type", "application/octet-stream")
		c.Status(200)
		io.Copy(c.Writer, readCloser)
	}
}
