// Package wavefront imports Wavefront .obj geometry into a scene: one
// material and material instance per file, one mesh and one
// translate/rotate/scale/mesh-node chain per shape.
package wavefront

import (
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

const (
	tokenNumber = iota
	tokenTriplet
	tokenNewline
	tokenComment
	tokenWord
)

var lexer *lexmachine.Lexer

func init() {
	lexer = lexmachine.NewLexer()
	lexer.Add([]byte(`[\+\-]?[0-9]*\.?[0-9]+([eE][\+\-]?[0-9]+)?`), getToken(tokenNumber))
	lexer.Add([]byte(`[\+\-]?[0-9]+(/[\+\-]?[0-9]*)(/[\+\-]?[0-9]+)?`), getToken(tokenTriplet))
	lexer.Add([]byte(`(\n|\r\n)+`), getToken(tokenNewline))
	lexer.Add([]byte(`#[^\n]*`), getToken(tokenComment))
	lexer.Add([]byte(`[ \t\r]+`), skip)
	lexer.Add([]byte(`[^ \t\r\n#]+`), getToken(tokenWord))
}

func getToken(tokenType int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(tokenType, string(m.Bytes), m), nil
	}
}

func skip(scan *lexmachine.Scanner, match *machines.Match) (interface{}, error) {
	return nil, nil
}

// faceVertex indexes into the file-level position/normal pools, zero-based;
// normal is -1 when the face vertex carries none.
type faceVertex struct {
	position int
	normal   int
}

type objShape struct {
	name  string
	faces [][]faceVertex
}

type objFile struct {
	positions []mgl32.Vec3
	normals   []mgl32.Vec3
	shapes    []*objShape
}

func (f *objFile) currentShape() *objShape {
	if len(f.shapes) == 0 {
		f.shapes = append(f.shapes, &objShape{})
	}
	return f.shapes[len(f.shapes)-1]
}

func parse(data []byte) (*objFile, error) {
	scanner, err := lexer.Scanner(data)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to create obj scanner")
	}

	file := &objFile{}
	var line []*lexmachine.Token

	for itok, err, eos := scanner.Next(); !eos; itok, err, eos = scanner.Next() {
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to tokenize obj")
		}
		tok := itok.(*lexmachine.Token)
		switch tok.Type {
		case tokenComment:
		case tokenNewline:
			if err := handleLine(file, line); err != nil {
				return nil, err
			}
			line = line[:0]
		default:
			line = append(line, tok)
		}
	}
	if err := handleLine(file, line); err != nil {
		return nil, err
	}
	return file, nil
}

func handleLine(file *objFile, line []*lexmachine.Token) error {
	if len(line) == 0 {
		return nil
	}
	keyword := string(line[0].Lexeme)
	args := line[1:]

	switch keyword {
	case "v":
		p, err := parseVec3(args)
		if err != nil {
			return errors.Wrapf(err, "Bad vertex at line %d", line[0].StartLine)
		}
		file.positions = append(file.positions, p)
	case "vn":
		n, err := parseVec3(args)
		if err != nil {
			return errors.Wrapf(err, "Bad normal at line %d", line[0].StartLine)
		}
		file.normals = append(file.normals, n)
	case "o", "g":
		name := ""
		if len(args) > 0 {
			name = string(args[0].Lexeme)
		}
		file.shapes = append(file.shapes, &objShape{name: name})
	case "f":
		face, err := parseFace(file, args)
		if err != nil {
			return errors.Wrapf(err, "Bad face at line %d", line[0].StartLine)
		}
		shape := file.currentShape()
		shape.faces = append(shape.faces, face)
	default:
		// vt, s, usemtl, mtllib and anything else the viewer has no use for
	}
	return nil
}

func parseVec3(args []*lexmachine.Token) (mgl32.Vec3, error) {
	if len(args) < 3 {
		return mgl32.Vec3{}, errors.Errorf("Expected 3 components, got %d", len(args))
	}
	var out mgl32.Vec3
	for i := 0; i < 3; i++ {
		if args[i].Type != tokenNumber {
			return mgl32.Vec3{}, errors.Errorf("Component %d is not a number", i)
		}
		f, err := strconv.ParseFloat(string(args[i].Lexeme), 32)
		if err != nil {
			return mgl32.Vec3{}, errors.Wrapf(err, "Component %d", i)
		}
		out[i] = float32(f)
	}
	return out, nil
}

func parseFace(file *objFile, args []*lexmachine.Token) ([]faceVertex, error) {
	if len(args) < 3 {
		return nil, errors.Errorf("Face has %d vertices, need at least 3", len(args))
	}
	face := make([]faceVertex, 0, len(args))
	for _, arg := range args {
		switch arg.Type {
		case tokenNumber, tokenTriplet:
		default:
			return nil, errors.Errorf("Face element %q is not an index", string(arg.Lexeme))
		}
		fv, err := parseFaceVertex(file, string(arg.Lexeme))
		if err != nil {
			return nil, err
		}
		face = append(face, fv)
	}
	return face, nil
}

// parseFaceVertex resolves one of the v, v/vt, v//vn, v/vt/vn forms.
// Negative indices are relative to the pool size at the time of use.
func parseFaceVertex(file *objFile, lexeme string) (faceVertex, error) {
	parts := strings.Split(lexeme, "/")
	fv := faceVertex{normal: -1}

	position, err := strconv.Atoi(parts[0])
	if err != nil {
		return fv, errors.Wrapf(err, "Bad position index %q", parts[0])
	}
	fv.position, err = resolveIndex(position, len(file.positions))
	if err != nil {
		return fv, err
	}

	if len(parts) == 3 && parts[2] != "" {
		normal, err := strconv.Atoi(parts[2])
		if err != nil {
			return fv, errors.Wrapf(err, "Bad normal index %q", parts[2])
		}
		fv.normal, err = resolveIndex(normal, len(file.normals))
		if err != nil {
			return fv, err
		}
	}
	return fv, nil
}

func resolveIndex(index, count int) (int, error) {
	switch {
	case index > 0 && index <= count:
		return index - 1, nil
	case index < 0 && -index <= count:
		return count + index, nil
	}
	return 0, errors.Errorf("Index %d out of range (have %d)", index, count)
}
