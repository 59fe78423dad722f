package hwp5

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/richardlehane/mscfb"

	"github.com/roboco-io/hwpxmd/internal/source"
)

var (
	// ErrEncrypted is returned for password protected documents.
	ErrEncrypted = errors.New("암호화된 HWP 문서는 지원하지 않습니다")
	// ErrDRM is returned for DRM protected documents.
	ErrDRM = errors.New("DRM 보호된 HWP 문서는 지원하지 않습니다")
)

// Reader opens HWP 5.x documents.
type Reader struct{}

// Format implements source.Reader.
func (Reader) Format() source.Format {
	return source.FormatHWP
}

// Open implements source.Reader.
func (Reader) Open(path string, opts source.Options) (source.Extractor, error) {
	return New(path, opts)
}

// Extractor reads paragraphs from an HWP 5.x compound file.
type Extractor struct {
	file    *os.File
	streams map[string][]byte
	options source.Options

	header   *FileHeader
	sections []string
}

// New opens the HWP file at path and reads its FileHeader.
func New(path string, opts source.Options) (*Extractor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("HWP 파일을 열 수 없습니다: %w", err)
	}

	doc, err := mscfb.New(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("OLE2 문서 파싱 실패: %w", err)
	}

	e := &Extractor{
		file:    f,
		streams: make(map[string][]byte),
		options: opts,
	}

	if err := e.loadStreams(doc); err != nil {
		e.Close()
		return nil, err
	}
	if err := e.parseFileHeader(); err != nil {
		e.Close()
		return nil, err
	}

	return e, nil
}

// Version returns the HWP version string.
func (e *Extractor) Version() string {
	if e.header != nil {
		return e.header.Version.String()
	}
	return ""
}

// Extract implements source.Extractor.
func (e *Extractor) Extract() ([]source.Paragraph, error) {
	docInfoData, err := e.stream(StreamDocInfo)
	if err != nil {
		return nil, err
	}
	docInfo, err := ParseDocInfo(docInfoData)
	if err != nil {
		return nil, fmt.Errorf("DocInfo 파싱 실패: %w", err)
	}

	var paras []source.Paragraph
	for _, name := range e.sections {
		data, err := e.stream(name)
		if err != nil {
			return nil, err
		}
		sectionParas, err := ParseSection(data, docInfo)
		if err != nil {
			return nil, fmt.Errorf("섹션 %s 파싱 실패: %w", name, err)
		}
		paras = append(paras, sectionParas...)
	}
	return paras, nil
}

// Close releases resources.
func (e *Extractor) Close() error {
	if e.file != nil {
		return e.file.Close()
	}
	return nil
}

// loadStreams reads every stream of the compound file, keyed by its
// slash-joined path such as "BodyText/Section0".
func (e *Extractor) loadStreams(doc *mscfb.Reader) error {
	for entry, err := doc.Next(); err != io.EOF; entry, err = doc.Next() {
		if err != nil {
			return fmt.Errorf("OLE2 항목을 읽을 수 없습니다: %w", err)
		}
		name := strings.Join(append(append([]string{}, entry.Path...), entry.Name), "/")
		data, err := io.ReadAll(entry)
		if err != nil {
			return fmt.Errorf("스트림 %s 읽기 실패: %w", name, err)
		}
		e.streams[name] = data

		if len(entry.Path) > 0 && entry.Path[len(entry.Path)-1] == StreamBodyText && strings.HasPrefix(entry.Name, "Section") {
			e.sections = append(e.sections, name)
		}
	}

	sort.Slice(e.sections, func(i, j int) bool {
		return sectionIndex(e.sections[i]) < sectionIndex(e.sections[j])
	})
	return nil
}

func sectionIndex(name string) int {
	n, err := strconv.Atoi(name[strings.LastIndex(name, "Section")+len("Section"):])
	if err != nil {
		return -1
	}
	return n
}

// stream returns a stream's data, decompressed when the document is.
func (e *Extractor) stream(name string) ([]byte, error) {
	data, ok := e.streams[name]
	if !ok {
		return nil, fmt.Errorf("스트림을 찾을 수 없습니다: %s", name)
	}
	if e.header != nil && e.header.IsCompressed() {
		decompressed, err := DecompressStream(data)
		if err != nil {
			return nil, fmt.Errorf("%s 압축 해제 실패: %w", name, err)
		}
		return decompressed, nil
	}
	return data, nil
}

func (e *Extractor) parseFileHeader() error {
	data, ok := e.streams[StreamFileHeader]
	if !ok {
		return fmt.Errorf("FileHeader 스트림을 찾을 수 없습니다")
	}

	header, err := ParseFileHeader(data)
	if err != nil {
		return err
	}
	e.header = header

	if header.IsEncrypted() {
		return ErrEncrypted
	}
	if header.HasDRM() {
		return ErrDRM
	}
	return nil
}
