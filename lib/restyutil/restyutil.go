package restyutil

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

// FilesystemOutput dumps one file per HTTP exchange into a directory,
// for debugging upstream responses that fail to normalize.
type FilesystemOutput struct {
	directory string
	idcounter *uint64
}

func NewFilesystemOutput(dir string) (*FilesystemOutput, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, err
	}
	var idcounter uint64
	return &FilesystemOutput{directory: dir, idcounter: &idcounter}, nil
}

func (o *FilesystemOutput) write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write http dump file", "id", id, "err", err)
	}
}

func formatHeaders(headers http.Header) string {
	var out strings.Builder
	for k, vals := range headers {
		for _, v := range vals {
			fmt.Fprintf(&out, "%s: %s\n", k, v)
		}
	}
	return strings.TrimRight(out.String(), "\n")
}

const exchangeTemplate = `---- REQUEST ----

%s %s

%s

---- RESPONSE ----

%d %s

%s

%s`

func formatExchange(res *resty.Response) string {
	return fmt.Sprintf(
		exchangeTemplate,
		res.Request.Method, res.Request.URL,
		formatHeaders(res.Request.Header),
		res.StatusCode(), res.Status(),
		formatHeaders(res.Header()),
		res.String(),
	)
}

// InstrumentClient writes every response the client receives to the
// output directory. A nil output is a no-op.
func InstrumentClient(client *resty.Client, output *FilesystemOutput) {
	if output == nil {
		return
	}
	client.OnAfterResponse(func(cli *resty.Client, res *resty.Response) error {
		id := atomic.AddUint64(output.idcounter, 1)
		output.write(fmt.Sprintf("%03d.txt", id), formatExchange(res))
		return nil
	})
}
