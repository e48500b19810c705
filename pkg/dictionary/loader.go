// Package dictionary reads and writes the word/weight corpora the suggest backends are built from.
package dictionary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

var (
	ErrUnknownFormat = errors.New("unknown dictionary format")
	ErrCorruptHeader = errors.New("corrupt dictionary header")
	ErrMalformedLine = errors.New("malformed dictionary line")
	ErrWordTooLong   = errors.New("word too long for binary format")
)

// Corpus is a parallel word/weight list in load order.
type Corpus struct {
	Words   []string
	Weights []float64
}

// NewCorpus returns an empty corpus with room for n entries.
func NewCorpus(n int) *Corpus {
	return &Corpus{
		Words:   make([]string, 0, n),
		Weights: make([]float64, 0, n),
	}
}

// Add appends an entry.
func (c *Corpus) Add(word string, weight float64) {
	c.Words = append(c.Words, word)
	c.Weights = append(c.Weights, weight)
}

// Len returns the number of entries, duplicates included.
func (c *Corpus) Len() int {
	return len(c.Words)
}

// Load reads a dictionary file. FormatUnknown detects the format from the file.
func Load(filename string, format FileFormat) (*Corpus, error) {
	if format == FormatUnknown {
		detected, err := DetectFileFormat(filename)
		if err != nil {
			return nil, err
		}
		format = detected
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary %s: %w", filename, err)
	}
	defer func(file *os.File) {
		if err := file.Close(); err != nil {
			log.Errorf("closing file: %v", err)
		}
	}(file)

	var corpus *Corpus
	switch format {
	case FormatBinary:
		corpus, err = ReadBinary(file)
	case FormatText:
		corpus, err = ReadText(file)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", filename, err)
	}

	log.Debugf("Loaded %d entries from %s dictionary: %s", corpus.Len(), format, filename)
	return corpus, nil
}

// ReadText parses "<weight>\t<word>" lines. An optional first line holding only
// the entry count is skipped, as are blank lines and lines starting with '#'.
// Weight and word may also be separated by spaces when there is no tab.
func ReadText(r io.Reader) (*Corpus, error) {
	corpus := NewCorpus(0)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	sawEntry := false
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !sawEntry && !strings.ContainsAny(line, "\t ") {
			if n, err := strconv.Atoi(line); err == nil {
				corpus = NewCorpus(n)
				sawEntry = true
				continue
			}
		}
		sawEntry = true

		weight, word, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedLine, lineNo, err)
		}
		corpus.Add(word, weight)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading text dictionary: %w", err)
	}
	return corpus, nil
}

func parseLine(line string) (float64, string, error) {
	weightField, word, ok := strings.Cut(line, "\t")
	if !ok {
		weightField, word, ok = strings.Cut(line, " ")
	}
	if !ok {
		return 0, "", fmt.Errorf("expected <weight> <word>, got %q", line)
	}

	weight, err := strconv.ParseFloat(strings.TrimSpace(weightField), 64)
	if err != nil {
		return 0, "", fmt.Errorf("bad weight %q", weightField)
	}
	word = strings.TrimSpace(word)
	if word == "" {
		return 0, "", fmt.Errorf("missing word after weight %q", weightField)
	}
	return weight, word, nil
}

// ReadBinary parses the binary layout:
// 4 bytes count header + (2 bytes length + word bytes + 4 bytes weight) repeated, little endian.
func ReadBinary(r io.Reader) (*Corpus, error) {
	reader := bufio.NewReader(r)

	var totalEntries int32
	if err := binary.Read(reader, binary.LittleEndian, &totalEntries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptHeader, err)
	}
	if totalEntries < 0 || totalEntries > MaxEntries {
		return nil, fmt.Errorf("%w: %d entries", ErrCorruptHeader, totalEntries)
	}

	corpus := NewCorpus(int(totalEntries))
	wordBytes := make([]byte, 0, 64)
	for i := 0; i < int(totalEntries); i++ {
		var wordLen uint16
		if err := binary.Read(reader, binary.LittleEndian, &wordLen); err != nil {
			return nil, fmt.Errorf("reading word length of entry %d: %w", i, err)
		}

		if cap(wordBytes) < int(wordLen) {
			wordBytes = make([]byte, wordLen)
		}
		wordBytes = wordBytes[:wordLen]
		if _, err := io.ReadFull(reader, wordBytes); err != nil {
			return nil, fmt.Errorf("reading word of entry %d: %w", i, err)
		}
		word := string(wordBytes)

		var weight uint32
		if err := binary.Read(reader, binary.LittleEndian, &weight); err != nil {
			return nil, fmt.Errorf("reading weight for word %s: %w", word, err)
		}
		corpus.Add(word, float64(weight))
	}
	return corpus, nil
}

// WriteBinary writes the corpus in the binary layout read by ReadBinary.
// Weights are stored as uint32, so fractions are truncated and values are clamped.
func WriteBinary(w io.Writer, corpus *Corpus) error {
	writer := bufio.NewWriter(w)

	if corpus.Len() > MaxEntries {
		return fmt.Errorf("%w: %d entries", ErrCorruptHeader, corpus.Len())
	}
	if err := binary.Write(writer, binary.LittleEndian, int32(corpus.Len())); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, word := range corpus.Words {
		if len(word) > math.MaxUint16 {
			return fmt.Errorf("%w: %d bytes", ErrWordTooLong, len(word))
		}
		if err := binary.Write(writer, binary.LittleEndian, uint16(len(word))); err != nil {
			return fmt.Errorf("writing word length: %w", err)
		}
		if _, err := writer.WriteString(word); err != nil {
			return fmt.Errorf("writing word %s: %w", word, err)
		}
		weight := math.Min(math.Max(corpus.Weights[i], 0), math.MaxUint32)
		if err := binary.Write(writer, binary.LittleEndian, uint32(weight)); err != nil {
			return fmt.Errorf("writing weight for word %s: %w", word, err)
		}
	}
	return writer.Flush()
}

// SaveBinary exports the corpus to a binary dictionary file.
func SaveBinary(filename string, corpus *Corpus) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating binary file: %w", err)
	}
	if err := WriteBinary(file, corpus); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
