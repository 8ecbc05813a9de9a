package channeler

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/monopole/shbridge/internal/logging"
)

const replacementChar = "�"

// relayOutput reads lines from a subprocess stream and forwards them,
// in order, to chStream. It closes chStream when it's done.
//
// Lines that aren't valid UTF-8 are forwarded anyway, repaired and
// flagged with a *DecodeError. A line longer than maxLineBytes is
// forwarded cut down to maxLineBytes and flagged the same way;
// the lines after it are relayed as usual.
//
// If nobody takes a line off chStream for stallWarning, a warning
// is logged and the relay keeps waiting. Cancelling ctx abandons
// the send and discards the rest of the stream.
func relayOutput(
	ctx context.Context,
	log *logging.Logger,
	name string,
	stream io.Reader,
	chStream chan<- Line,
	maxLineBytes int,
	stallWarning time.Duration,
) error {
	defer close(chStream)
	reader := bufio.NewReaderSize(stream, min(maxLineBytes, 64*1024))

	log.Debug("awaiting data from subprocess")
	count := 0
	timer := time.NewTimer(stallWarning)
	defer timer.Stop()
	for {
		raw, tooLong, err := readLine(reader, maxLineBytes)
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Warn("read incomplete; discarding remainder", "err", err)
			drain(log, stream)
			return &DecodeError{Stream: name, Num: count + 1, Err: err}
		}
		count++
		line := makeLine(name, count, raw, tooLong)
		if line.Err != nil {
			log.Warn("flagging undecodable line", "num", count, "err", line.Err)
		}
		log.Debug("have read line", "num", count, "text", logging.Abbrev(line.Text))
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(stallWarning)
		if err := forward(ctx, log, chStream, line, timer, stallWarning); err != nil {
			drain(log, stream)
			return err
		}
	}
	log.Debug("read done; closing forwarding channel", "lines", count)
	return nil
}

// readLine returns the next line from r without its line ending.
// A line longer than maxLineBytes is cut to maxLineBytes, with
// tooLong set; the rest of it is consumed and discarded.
// At the end of the stream, a last line lacking a NewLine is
// returned, and io.EOF only once nothing is left.
func readLine(r *bufio.Reader, maxLineBytes int) (line []byte, tooLong bool, err error) {
	// Room for a full line plus "\r\n".
	keep := maxLineBytes + 2
	total := 0
	for {
		chunk, rdErr := r.ReadSlice(newLineChar)
		total += len(chunk)
		if room := keep - len(line); room > 0 {
			line = append(line, chunk[:min(len(chunk), room)]...)
		}
		if rdErr == bufio.ErrBufferFull {
			continue
		}
		if rdErr == io.EOF && total > 0 {
			break
		}
		if rdErr != nil {
			return nil, false, rdErr
		}
		break
	}
	if total > len(line) {
		return line[:maxLineBytes], true, nil
	}
	line = bytes.TrimSuffix(line, []byte{newLineChar})
	line = bytes.TrimSuffix(line, []byte{'\r'})
	if len(line) > maxLineBytes {
		return line[:maxLineBytes], true, nil
	}
	return line, false, nil
}

// forward blocks until line is accepted by chStream or ctx is done.
func forward(
	ctx context.Context,
	log *logging.Logger,
	chStream chan<- Line,
	line Line,
	timer *time.Timer,
	stallWarning time.Duration,
) error {
	for {
		select {
		case chStream <- line:
			return nil
		case <-ctx.Done():
			log.Debug("cancelled while forwarding", "num", line.Num)
			return ctx.Err()
		case <-timer.C:
			// Output isn't being consumed. Nothing is dropped;
			// the subprocess will block on its own pipe soon enough.
			log.Warn("consumer stalled", "after", stallWarning, "num", line.Num)
			timer.Reset(stallWarning)
		}
	}
}

func makeLine(name string, num int, raw []byte, tooLong bool) Line {
	if tooLong {
		return Line{
			Num:  num,
			Text: strings.ToValidUTF8(string(raw), replacementChar),
			Err:  &DecodeError{Stream: name, Num: num, Err: ErrLineTooLong},
		}
	}
	if utf8.Valid(raw) {
		return Line{Num: num, Text: string(raw)}
	}
	return Line{
		Num:  num,
		Text: strings.ToValidUTF8(string(raw), replacementChar),
		Err:  &DecodeError{Stream: name, Num: num, Err: ErrInvalidUTF8},
	}
}

func drain(log *logging.Logger, stream io.Reader) {
	n, err := io.Copy(io.Discard, stream)
	log.Debug("drained stream", "bytes", n, "err", err)
}
