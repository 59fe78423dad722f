package hwp5

import (
	"encoding/binary"
	"fmt"

	"github.com/roboco-io/hwpxmd/internal/source"
)

// DocInfo holds the DocInfo stream fields used for text extraction.
type DocInfo struct {
	SectionCount int
	ParaShapes   []ParaShape
}

// ParaShape는 문단 모양 (HWPTAG_PARA_SHAPE)
type ParaShape struct {
	Attributes1 uint32
}

// Heading returns the para head kind and zero-based level.
// 속성1 비트 23-24: 문단 머리 종류, 비트 25-27: 문단 수준
func (ps ParaShape) Heading() (source.HeadingType, int) {
	level := int((ps.Attributes1 >> 25) & 0x07)
	switch (ps.Attributes1 >> 23) & 0x03 {
	case headOutline:
		return source.HeadingOutline, level
	case headNumber:
		return source.HeadingNumber, level
	case headBullet:
		return source.HeadingBullet, level
	default:
		return source.HeadingNone, 0
	}
}

// ParseDocInfo parses decompressed DocInfo stream data.
func ParseDocInfo(data []byte) (*DocInfo, error) {
	records, err := NewRecordReader(data).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read DocInfo records: %w", err)
	}

	info := &DocInfo{}
	for _, rec := range records {
		switch rec.TagID {
		case TagDocumentProperties:
			if len(rec.Data) >= 2 {
				info.SectionCount = int(binary.LittleEndian.Uint16(rec.Data[0:2]))
			}
		case TagParaShape:
			if len(rec.Data) >= 4 {
				info.ParaShapes = append(info.ParaShapes, ParaShape{
					Attributes1: binary.LittleEndian.Uint32(rec.Data[0:4]),
				})
			}
		}
	}

	return info, nil
}

// ParaShape returns the para shape with the given ID.
func (info *DocInfo) ParaShape(id int) (ParaShape, bool) {
	if info == nil || id < 0 || id >= len(info.ParaShapes) {
		return ParaShape{}, false
	}
	return info.ParaShapes[id], true
}
