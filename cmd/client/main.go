package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gorilla/websocket"

	"github.com/agnivade/pitchtrack"
)

// CLI defines the command-line interface.
type CLI struct {
	URL         string `default:"ws://localhost:8081/ws" help:"Websocket URL of a pitchtrack server"`
	Output      string `short:"o" type:"path" help:"Also append readings to this file (optional)"`
	ChangesOnly bool   `help:"Print a line only when the detected note changes"`
}

// Client prints readings streamed by a pitchtrack server.
type Client struct {
	conn        *websocket.Conn
	log         *slog.Logger
	out         io.Writer
	bufWriter   *bufio.Writer
	changesOnly bool
	lastNote    string
	wg          sync.WaitGroup
}

func main() {
	cli := &CLI{}
	kong.Parse(cli,
		kong.Name("pitchtrack-client"),
		kong.Description("Print notes detected by a pitchtrack server"),
		kong.UsageOnError(),
	)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	conn, _, err := websocket.DefaultDialer.Dial(cli.URL, nil)
	if err != nil {
		logger.Error("websocket dial failed", "url", cli.URL, "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	client := &Client{
		conn:        conn,
		log:         logger,
		out:         os.Stdout,
		changesOnly: cli.ChangesOnly,
	}

	if cli.Output != "" {
		outputFile, err := os.OpenFile(cli.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open output file", "error", err)
			os.Exit(1)
		}
		defer outputFile.Close()

		client.bufWriter = bufio.NewWriter(outputFile)
		defer client.bufWriter.Flush()
	}

	fmt.Println("Listening... Press Ctrl+C to stop.")
	client.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sig:
	case <-client.Done():
		logger.Info("server closed the connection")
	}

	client.Close()
	fmt.Println("\nDone.")
}

// Start begins reading results in the background.
func (c *Client) Start() {
	c.wg.Add(1)
	go c.reader()
}

// Done is closed once the reader has exited.
func (c *Client) Done() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	return done
}

func (c *Client) reader() {
	defer c.wg.Done()

	for {
		var msg pitchtrack.ResultMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("websocket read error", "error", err)
			}
			return
		}

		if c.changesOnly && msg.Note == c.lastNote {
			continue
		}
		c.lastNote = msg.Note

		line := formatReading(msg)
		fmt.Fprint(c.out, line)

		if c.bufWriter != nil {
			if _, err := c.bufWriter.WriteString(line); err != nil {
				c.log.Warn("failed to write to output file", "error", err)
			} else {
				c.bufWriter.Flush()
			}
		}
	}
}

// Close sends a close frame and waits for the reader to finish.
func (c *Client) Close() {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))

	select {
	case <-c.Done():
	case <-time.After(time.Second):
	}
	c.conn.Close()
	c.wg.Wait()
}

// formatReading renders one result as a line such as
//
//	[12:00:00] A2    110.50 Hz   +7.8c [....|#...] in tune
func formatReading(msg pitchtrack.ResultMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %-4s %8.2f Hz %+6.1fc %s",
		msg.At.Local().Format("15:04:05"), msg.Note, msg.PitchHz, msg.Cents, meter(msg.Tick))
	if msg.InTune {
		b.WriteString(" in tune")
	}
	if !msg.InTarget {
		b.WriteString(" (off target)")
	}
	b.WriteByte('\n')
	return b.String()
}

// meter draws the nine-tick cents meter; the centre tick is drawn as '|'.
func meter(tick *int) string {
	slots := []byte(".........")
	slots[4] = '|'
	if tick != nil && *tick >= 0 && *tick < len(slots) {
		slots[*tick] = '#'
	}
	return "[" + string(slots) + "]"
}
