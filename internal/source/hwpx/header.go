package hwpx

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/roboco-io/hwpxmd/internal/source"
)

// paraHead is the numbering declared by one paraPr entry.
type paraHead struct {
	kind  source.HeadingType
	level int
}

// parseParaHeads reads paraPr heading declarations from header.xml, keyed
// by paraPr id.
func parseParaHeads(r io.Reader) (map[string]paraHead, error) {
	heads := make(map[string]paraHead)
	decoder := xml.NewDecoder(r)

	var currentID string
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("XML parse error: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "paraPr":
				currentID = attr(t, "id")
			case "heading":
				if currentID == "" {
					continue
				}
				kind := headingType(attr(t, "type"))
				if kind == source.HeadingNone {
					continue
				}
				level, _ := strconv.Atoi(attr(t, "level"))
				heads[currentID] = paraHead{kind: kind, level: level}
			}
		case xml.EndElement:
			if t.Name.Local == "paraPr" {
				currentID = ""
			}
		}
	}

	return heads, nil
}

func headingType(s string) source.HeadingType {
	switch s {
	case "OUTLINE":
		return source.HeadingOutline
	case "NUMBER":
		return source.HeadingNumber
	case "BULLET":
		return source.HeadingBullet
	default:
		return source.HeadingNone
	}
}

func attr(e xml.StartElement, local string) string {
	for _, a := range e.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
