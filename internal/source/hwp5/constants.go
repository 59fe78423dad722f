// Package hwp5 extracts text from HWP 5.x binary documents.
package hwp5

// HWP 5.x 파일 포맷 상수 정의
// 참조: 한글문서파일형식 5.0 revision 1.3

const (
	// FileHeader 시그니처
	Signature = "HWP Document File"

	// FileHeader 크기 (고정)
	FileHeaderSize = 256

	// 속성 플래그 비트
	FlagCompressed    uint32 = 1 << 0 // 압축 여부
	FlagEncrypted     uint32 = 1 << 1 // 암호화 여부
	FlagDistributable uint32 = 1 << 2 // 배포용 문서
	FlagDRM           uint32 = 1 << 4 // DRM 보안
)

// 스트림 이름
const (
	StreamFileHeader = "FileHeader"
	StreamDocInfo    = "DocInfo"
	StreamBodyText   = "BodyText"
)

// 레코드 태그 ID (HWPTAG_*)
const (
	TagDocumentProperties uint16 = 0x0010 // 문서 속성
	TagParaShape          uint16 = 0x0019 // 문단 모양

	TagParaHeader uint16 = 0x0042 // 문단 헤더
	TagParaText   uint16 = 0x0043 // 문단 텍스트
	TagCtrlHeader uint16 = 0x0047 // 컨트롤 헤더
	TagListHeader uint16 = 0x0048 // 리스트 헤더
	TagTable      uint16 = 0x004D // 표
)

// 컨트롤 ID (CTRL_HEADER 첫 4바이트, 리틀엔디언이므로 문자열이 뒤집혀 저장됨)
const (
	CtrlTable = "tbl " // 표
	CtrlGSO   = "gso " // 그리기 개체 (글상자 포함)
)

// 문단 텍스트 제어 문자
const (
	CharLineBreak      = 0x000A // 강제 줄 나눔
	CharParaBreak      = 0x000D // 문단 끝
	CharTab            = 0x0009 // 탭 (인라인 컨트롤)
	CharHyphen         = 0x0018 // 하이픈
	CharNBSP           = 0x001E // 묶음 빈칸
	CharFixedWidthNBSP = 0x001F // 고정폭 빈칸
)

// 문단 머리 종류 (PARA_SHAPE 속성1 비트 23-24)
const (
	headNone    = 0
	headOutline = 1
	headNumber  = 2
	headBullet  = 3
)
