package service

import (
	"mime/multipart"

	"github.com/lib/pq"
)

type multipartPair struct {
	file   multipart.File
	header *multipart.FileHeader
}

func zipImages(files []multipart.File, headers []*multipart.FileHeader) []multipartPair {
	total := min(len(files), len(headers))

	pairs := make([]multipartPair, 0, total)
	for i := range total {
		pairs = append(pairs, multipartPair{file: files[i], header: headers[i]})
	}

	return pairs
}

func pqArray(urls []string) pq.StringArray {
	return pq.StringArray(urls)
}
