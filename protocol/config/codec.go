package config

import (
	"bytes"
	"encoding/json"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v2"

	"github.com/hashprotocol/AlgoTeal-interpreter/errors"
)

// Format is a document file format.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
	CBOR Format = "cbor"
)

// Formats lists the supported formats.
var Formats = []Format{JSON, YAML, TOML, CBOR}

var cborEnc cbor.EncMode

func init() {
	var err error
	cborEnc, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
}

// FormatOf picks a format from a file name's extension.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	case ".cbor":
		return CBOR, nil
	}
	return "", errors.WithDetailf(ErrFormat, "cannot tell the format of %q from its extension", name)
}

// Decode reads a document in the given format.
func Decode(r io.Reader, f Format) (*Document, error) {
	var tree interface{}
	switch f {
	case JSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		err := dec.Decode(&tree)
		if err == io.EOF {
			return New(), nil
		}
		if err != nil {
			return nil, errors.Sub(ErrDocument, err)
		}
	case YAML:
		data, err := ioutil.ReadAll(r)
		if err != nil {
			return nil, errors.Wrap(err, "reading yaml document")
		}
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, errors.Sub(ErrDocument, err)
		}
	case TOML:
		m := make(map[string]interface{})
		if _, err := toml.NewDecoder(r).Decode(&m); err != nil {
			return nil, errors.Sub(ErrDocument, err)
		}
		tree = m
	case CBOR:
		data, err := ioutil.ReadAll(r)
		if err != nil {
			return nil, errors.Wrap(err, "reading cbor document")
		}
		if len(data) == 0 {
			return New(), nil
		}
		if err := cbor.Unmarshal(data, &tree); err != nil {
			return nil, errors.Sub(ErrDocument, err)
		}
	default:
		return nil, errors.WithDetailf(ErrFormat, "format %q", f)
	}
	return FromTree(tree)
}

// Encode writes doc in the given format.
func Encode(w io.Writer, doc *Document, f Format) error {
	tree := doc.Tree()
	var (
		data []byte
		err  error
	)
	switch f {
	case JSON:
		data, err = json.MarshalIndent(tree, "", "  ")
		data = append(data, '\n')
	case YAML:
		data, err = yaml.Marshal(tree)
	case TOML:
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(tree)
		data = buf.Bytes()
	case CBOR:
		data, err = cborEnc.Marshal(tree)
	default:
		return errors.WithDetailf(ErrFormat, "format %q", f)
	}
	if err != nil {
		return errors.Wrapf(err, "encoding %s document", f)
	}
	_, err = w.Write(data)
	return errors.Wrap(err)
}

// Load reads the document stored in the named file,
// choosing the format from its extension.
func Load(name string) (*Document, error) {
	f, err := FormatOf(name)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err)
	}
	defer file.Close()
	doc, err := Decode(file, f)
	return doc, errors.Wrapf(err, "loading %s", name)
}

// Save writes doc to the named file,
// choosing the format from its extension.
func Save(name string, doc *Document) error {
	f, err := FormatOf(name)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, doc, f); err != nil {
		return err
	}
	return errors.Wrap(ioutil.WriteFile(name, buf.Bytes(), 0644))
}
