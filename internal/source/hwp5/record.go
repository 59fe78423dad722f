package hwp5

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
)

// Record는 HWP 5.x 레코드 구조체
type Record struct {
	TagID uint16 // 레코드 종류 (10비트)
	Level uint16 // 논리적 계층 (10비트)
	Data  []byte // 레코드 데이터
}

// RecordReader reads records from a decompressed stream.
type RecordReader struct {
	data   []byte
	offset int
}

// NewRecordReader creates a new record reader from raw stream data.
func NewRecordReader(data []byte) *RecordReader {
	return &RecordReader{data: data}
}

// Read reads the next record.
// 헤더 구조: [TagID:10비트][Level:10비트][Size:12비트], Size가 0xFFF면 다음 4바이트가 실제 크기
func (r *RecordReader) Read() (*Record, error) {
	if r.offset >= len(r.data) {
		return nil, io.EOF
	}
	if r.offset+4 > len(r.data) {
		return nil, fmt.Errorf("incomplete record header at offset %d", r.offset)
	}

	header := binary.LittleEndian.Uint32(r.data[r.offset : r.offset+4])
	r.offset += 4

	rec := &Record{
		TagID: uint16(header & 0x3FF),
		Level: uint16((header >> 10) & 0x3FF),
	}

	size := (header >> 20) & 0xFFF
	if size == 0xFFF {
		if r.offset+4 > len(r.data) {
			return nil, fmt.Errorf("incomplete extended size at offset %d", r.offset)
		}
		size = binary.LittleEndian.Uint32(r.data[r.offset : r.offset+4])
		r.offset += 4
	}

	if uint64(r.offset)+uint64(size) > uint64(len(r.data)) {
		return nil, fmt.Errorf("incomplete record data at offset %d: need %d bytes, have %d",
			r.offset, size, len(r.data)-r.offset)
	}
	rec.Data = r.data[r.offset : r.offset+int(size)]
	r.offset += int(size)

	return rec, nil
}

// ReadAll reads all records from the stream.
func (r *RecordReader) ReadAll() ([]*Record, error) {
	var records []*Record
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// DecompressStream decompresses a stream. HWP 5.x writes raw deflate data;
// zlib-wrapped data is accepted as well.
func DecompressStream(data []byte) ([]byte, error) {
	if len(data) >= 2 && data[0] == 0x78 {
		if reader, err := zlib.NewReader(bytes.NewReader(data)); err == nil {
			decompressed, err := io.ReadAll(reader)
			reader.Close()
			if err == nil {
				return decompressed, nil
			}
		}
	}

	reader := flate.NewReader(bytes.NewReader(data))
	defer reader.Close()

	decompressed, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress (tried zlib and deflate): %w", err)
	}
	return decompressed, nil
}
