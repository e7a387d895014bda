package console

import (
	"fmt"
	"io"

	"github.com/dshills/docedit/internal/logging"
	"github.com/dshills/docedit/internal/model"
)

// Observer reports document modifications on the console and in the log.
type Observer struct {
	out    io.Writer
	logger *logging.Logger
	style  palette
}

// NewObserver creates an observer writing to out.
func NewObserver(out io.Writer, logger *logging.Logger) *Observer {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Observer{out: out, logger: logger, style: newPalette(out)}
}

// DocumentChanged implements model.Observer. Clean documents are ignored.
func (o *Observer) DocumentChanged(doc *model.Document) {
	if !doc.IsDirty() {
		return
	}
	o.logger.Info("Document '%s' has been modified", doc.Title())
	fmt.Fprintln(o.out, o.style.notice.Render(
		fmt.Sprintf("[DOCUMENT MODIFIED] %s (Elements: %d)", doc.Title(), doc.Len())))
}
