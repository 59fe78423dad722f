package hwp5

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// FileHeader는 HWP 5.x 파일 헤더 구조체
type FileHeader struct {
	Signature [32]byte // 파일 시그니처 "HWP Document File"
	Version   Version  // 파일 버전
	Flags     uint32   // 속성 플래그
}

// Version은 HWP 파일 버전 (예: 5.0.3.0)
type Version struct {
	Major    uint8
	Minor    uint8
	Build    uint8
	Revision uint8
}

// String returns version string like "5.0.3.0"
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Build, v.Revision)
}

// ParseFileHeader parses the FileHeader from raw bytes.
func ParseFileHeader(data []byte) (*FileHeader, error) {
	if len(data) < FileHeaderSize {
		return nil, fmt.Errorf("file header too small: %d bytes", len(data))
	}

	h := &FileHeader{}
	copy(h.Signature[:], data[0:32])

	sig := string(bytes.TrimRight(h.Signature[:], "\x00"))
	if sig != Signature {
		return nil, fmt.Errorf("invalid HWP signature: %q", sig)
	}

	// 포맷: [Revision][Build][Minor][Major]
	h.Version.Revision = data[32]
	h.Version.Build = data[33]
	h.Version.Minor = data[34]
	h.Version.Major = data[35]

	h.Flags = binary.LittleEndian.Uint32(data[36:40])

	return h, nil
}

// IsCompressed returns true if the document streams are compressed.
func (h *FileHeader) IsCompressed() bool {
	return h.Flags&FlagCompressed != 0
}

// IsEncrypted returns true if the document is password protected.
func (h *FileHeader) IsEncrypted() bool {
	return h.Flags&FlagEncrypted != 0
}

// IsDistributable returns true if this is a distribution document.
func (h *FileHeader) IsDistributable() bool {
	return h.Flags&FlagDistributable != 0
}

// HasDRM returns true if the document has DRM protection.
func (h *FileHeader) HasDRM() bool {
	return h.Flags&FlagDRM != 0
}
