package main

import (
	"flag"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/googlegenomics/locget/locget-multisource-server/file"
)

var (
	port     = flag.Int("port", 8080, "HTTP service port")
	spanSize = flag.Uint64("span_size", 1024*1024, "span size soft limit")

	directory = flag.String("directory", "", "directory that contains features.tsv/seq files")
	baseURL   = flag.String("base_url", "http://localhost:8080", "base URL used for span links in tickets")
)

func main() {
	flag.Parse()
	router := gin.Default()

	if *directory == "" {
		panic("no directory specified")
	}
	router.GET("/features/:id", file.NewFeaturesHandler(*directory, *spanSize, *baseURL))
	router.GET("/span/:id", file.NewSpanHandler(*directory))
	router.Run(":" + strconv.Itoa(*port))
}
