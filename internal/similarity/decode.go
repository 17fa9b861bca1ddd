package similarity

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"cinematch/internal/services"
)

var (
	npyMagic   = []byte("\x93NUMPY")
	npyDescr   = regexp.MustCompile(`'descr'\s*:\s*'([^']*)'`)
	npyFortran = regexp.MustCompile(`'fortran_order'\s*:\s*(True|False)`)
	npyShape   = regexp.MustCompile(`'shape'\s*:\s*\(([^)]*)\)`)
)

func decodeJSON(r io.Reader) (*Store, error) {
	var rows [][]float64
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, services.Wrap(services.ErrLoad, component, "decode json", "", err)
	}
	return New(rows)
}

func decodeCSV(r io.Reader) (*Store, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, services.Wrap(services.ErrLoad, component, "decode csv", "", err)
	}
	rows := make([][]float64, 0, len(records))
	for i, record := range records {
		row := make([]float64, 0, len(record))
		for j, cell := range record {
			value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, services.Wrap(services.ErrLoad, component, "decode csv",
					fmt.Sprintf("row %d column %d", i, j), err)
			}
			row = append(row, value)
		}
		rows = append(rows, row)
	}
	return New(rows)
}

type npyHeader struct {
	order   binary.ByteOrder
	width   int
	fortran bool
	rows    int
	cols    int
}

// decodeNPY reads a .npy matrix. size is the artifact length in bytes, or
// negative when unknown; a known size bounds the allocation the header may
// ask for.
func decodeNPY(r io.Reader, size int64) (*Store, error) {
	br := bufio.NewReader(r)
	prefix := make([]byte, 8)
	if _, err := io.ReadFull(br, prefix); err != nil {
		return nil, services.Wrap(services.ErrLoad, component, "decode npy", "short preamble", err)
	}
	if !bytes.Equal(prefix[:6], npyMagic) {
		return nil, services.Wrap(services.ErrLoad, component, "decode npy", "missing NUMPY magic", nil)
	}

	var headerLen, lengthField int
	switch major := prefix[6]; major {
	case 1:
		lengthField = 2
		var n uint16
		if err := binary.Read(br, binary.LittleEndian, &n); err != nil {
			return nil, services.Wrap(services.ErrLoad, component, "decode npy", "header length", err)
		}
		headerLen = int(n)
	case 2, 3:
		lengthField = 4
		var n uint32
		if err := binary.Read(br, binary.LittleEndian, &n); err != nil {
			return nil, services.Wrap(services.ErrLoad, component, "decode npy", "header length", err)
		}
		headerLen = int(n)
	default:
		return nil, services.Wrap(services.ErrLoad, component, "decode npy", fmt.Sprintf("unsupported format version %d", major), nil)
	}

	raw := make([]byte, headerLen)
	if _, err := io.ReadFull(br, raw); err != nil {
		return nil, services.Wrap(services.ErrLoad, component, "decode npy", "header", err)
	}
	header, err := parseNPYHeader(string(raw))
	if err != nil {
		return nil, services.Wrap(services.ErrLoad, component, "decode npy", "header", err)
	}
	if header.rows != header.cols {
		return nil, services.Wrap(services.ErrLoad, component, "decode npy",
			fmt.Sprintf("shape (%d, %d) is not square", header.rows, header.cols), nil)
	}

	n := header.rows
	if n > 0 && n > math.MaxInt/n/header.width {
		return nil, services.Wrap(services.ErrLoad, component, "decode npy",
			fmt.Sprintf("shape (%d, %d) is too large", n, n), nil)
	}
	if size >= 0 {
		available := size - int64(len(prefix)+lengthField+headerLen)
		if needed := int64(n * n * header.width); needed > available {
			return nil, services.Wrap(services.ErrLoad, component, "decode npy",
				fmt.Sprintf("shape (%d, %d) needs %d data bytes, file has %d", n, n, needed, available), nil)
		}
	}
	values := make([]float64, n*n)
	if err := readNPYValues(br, header, values); err != nil {
		return nil, services.Wrap(services.ErrLoad, component, "decode npy", "data", err)
	}
	if header.fortran {
		values = transpose(values, n)
	}
	return &Store{n: n, values: values}, nil
}

func parseNPYHeader(header string) (npyHeader, error) {
	var h npyHeader

	descr := npyDescr.FindStringSubmatch(header)
	if descr == nil || len(descr[1]) < 3 {
		return h, errors.New("missing descr")
	}
	switch descr[1][0] {
	case '<', '|', '=':
		h.order = binary.LittleEndian
	case '>':
		h.order = binary.BigEndian
	default:
		return h, fmt.Errorf("unsupported byte order in %q", descr[1])
	}
	switch descr[1][1:] {
	case "f8":
		h.width = 8
	case "f4":
		h.width = 4
	default:
		return h, fmt.Errorf("unsupported dtype %q", descr[1])
	}

	fortran := npyFortran.FindStringSubmatch(header)
	if fortran == nil {
		return h, errors.New("missing fortran_order")
	}
	h.fortran = fortran[1] == "True"

	shape := npyShape.FindStringSubmatch(header)
	if shape == nil {
		return h, errors.New("missing shape")
	}
	var dims []int
	for _, part := range strings.Split(shape[1], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		dim, err := strconv.Atoi(part)
		if err != nil || dim < 0 {
			return h, fmt.Errorf("invalid shape %q", shape[1])
		}
		dims = append(dims, dim)
	}
	if len(dims) != 2 {
		return h, fmt.Errorf("shape %q is not two-dimensional", shape[1])
	}
	h.rows, h.cols = dims[0], dims[1]
	return h, nil
}

func readNPYValues(r io.Reader, h npyHeader, dst []float64) error {
	buf := make([]byte, h.width)
	for i := range dst {
		if _, err := io.ReadFull(r, buf); err != nil {
			return err
		}
		if h.width == 8 {
			dst[i] = math.Float64frombits(h.order.Uint64(buf))
		} else {
			dst[i] = float64(math.Float32frombits(h.order.Uint32(buf)))
		}
	}
	return nil
}

// transpose converts a column-major n x n matrix to row-major.
func transpose(values []float64, n int) []float64 {
	out := make([]float64, len(values))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[i*n+j] = values[j*n+i]
		}
	}
	return out
}
