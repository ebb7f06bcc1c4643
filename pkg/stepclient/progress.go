package stepclient

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const redrawEvery = 150 * time.Millisecond

// uploadProgress перерисовывает одну строку "имя  NN%  отправлено / всего" по мере чтения файла.
// Методы безопасны для nil: без WithProgress Upload работает с nil-указателем.
type uploadProgress struct {
	mu     sync.Mutex
	out    io.Writer
	name   string
	size   int64
	sent   int64
	drawn  time.Time
	width  int
	closed bool
}

func newUploadProgress(out io.Writer, name string, size int64) *uploadProgress {
	if out == nil {
		return nil
	}
	return &uploadProgress{out: out, name: name, size: size}
}

// reader оборачивает тело файла; счёт идёт по мере того, как pipe забирает байты.
func (p *uploadProgress) reader(r io.Reader) io.Reader {
	if p == nil {
		return r
	}
	return &countingReader{r: r, onRead: p.advance}
}

func (p *uploadProgress) advance(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.sent += int64(n)
	if time.Since(p.drawn) >= redrawEvery {
		p.drawLocked("")
	}
}

// done дописывает итог и переводит строку; повторные вызовы игнорируются.
func (p *uploadProgress) done(err error) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true

	status := "done"
	if err != nil {
		status = "failed: " + err.Error()
	}
	p.drawLocked(" " + status + "\n")
}

func (p *uploadProgress) drawLocked(tail string) {
	line := p.status()
	pad := ""
	if p.width > len(line) {
		pad = strings.Repeat(" ", p.width-len(line))
	}
	p.width = len(line)
	p.drawn = time.Now()
	fmt.Fprintf(p.out, "\r%s%s%s", line, pad, tail)
}

// status без размера (size <= 0) показывает только отправленный объём.
func (p *uploadProgress) status() string {
	if p.size <= 0 {
		return fmt.Sprintf("Uploading %s  %s", p.name, FormatFileSize(p.sent))
	}

	pct := p.sent * 100 / p.size
	if pct > 100 {
		pct = 100
	}
	return fmt.Sprintf("Uploading %s  %3d%%  %s / %s", p.name, pct, FormatFileSize(p.sent), FormatFileSize(p.size))
}

type countingReader struct {
	r      io.Reader
	onRead func(int)
}

func (c *countingReader) Read(b []byte) (int, error) {
	n, err := c.r.Read(b)
	if n > 0 {
		c.onRead(n)
	}
	return n, err
}
