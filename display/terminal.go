package kinetic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	Ko "github.com/maroda/kinetic/obvy"
	Kp "github.com/maroda/kinetic/plugin"
	Ks "github.com/maroda/kinetic/server"
	Kt "github.com/maroda/kinetic/types"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	screenGutter = 4
	gridRadius   = 5
)

// View holds the service that is serving right now and the
// sequence browser state drawn by tcell
type View struct {
	MU         sync.RWMutex         // guards Service and the browser state
	Service    *Ks.Service          // current continuation service, swapped on reload
	Source     Kp.DatasetSource     // where rows are read from on reload
	Letters    *Ks.LetterClassifier // shared by every rebuilt service
	Screen     tcell.Screen         // the screen itself
	Stats      *Ko.StatsInternal    // Internal status for prometheus
	Supervisor *RefreshSupervisor   // dataset refresh loop
	server     *http.Server         // API and metrics server
	Position   string               // position being browsed
	History    []string             // positions visited before this one
	Selected   int                  // highlighted option
}

// CurrentService is safe to call while a reload swaps the service
func (v *View) CurrentService() *Ks.Service {
	v.MU.RLock()
	defer v.MU.RUnlock()
	return v.Service
}

// Reload rebuilds the dataset from the source and swaps in a new service.
// On error the old service keeps serving.
func (v *View) Reload(ctx context.Context) error {
	start := time.Now()
	ctx, span := Ko.Tracer().Start(ctx, "dataset.reload")
	defer span.End()

	if v.Source == nil {
		return errors.New("no dataset source")
	}

	rows, err := v.Source.Rows(ctx)
	if err != nil {
		slog.Error("Failed to reload dataset",
			slog.String("source", v.Source.Type()),
			slog.Any("error", err))
		span.RecordError(err)
		v.Stats.RecReload(false)
		return fmt.Errorf("reload: %w", err)
	}

	ds := Ks.NewMotionDataset(rows)
	svc := Ks.NewService(ds, v.Letters)

	v.MU.Lock()
	v.Service = svc
	v.Selected = 0
	v.MU.Unlock()

	v.Stats.RecReloadTimer(time.Since(start).Seconds())
	v.Stats.RecReload(true)
	v.Stats.SetDataset(ds.Len(), len(ds.Diagnostics()))

	slog.Info("Dataset reloaded",
		slog.String("source", v.Source.Type()),
		slog.Int("records", ds.Len()))
	return nil
}

////////// BROWSER STATE

// browserState copies what a draw needs under one lock
func (v *View) browserState() (*Ks.Service, string, int, int) {
	v.MU.RLock()
	defer v.MU.RUnlock()
	return v.Service, v.Position, v.Selected, len(v.History)
}

// SelectNext moves the highlight down, wrapping around
func (v *View) SelectNext() {
	v.moveSelection(1)
}

func (v *View) SelectPrev() {
	v.moveSelection(-1)
}

func (v *View) moveSelection(d int) {
	v.MU.Lock()
	defer v.MU.Unlock()

	n := len(v.Service.NextOptions(v.Position))
	if n == 0 {
		v.Selected = 0
		return
	}
	v.Selected = ((v.Selected+d)%n + n) % n
}

// Advance moves to the end position of the selected option
func (v *View) Advance() bool {
	v.MU.Lock()
	defer v.MU.Unlock()

	opts := v.Service.NextOptions(v.Position)
	if v.Selected < 0 || v.Selected >= len(opts) {
		return false
	}
	next := opts[v.Selected].EndPosition
	if next == "" {
		return false
	}

	v.History = append(v.History, v.Position)
	v.Position = next
	v.Selected = 0
	v.Stats.RecLookup("tui", len(v.Service.NextOptions(next)))
	return true
}

// Back returns to the previous position
func (v *View) Back() bool {
	v.MU.Lock()
	defer v.MU.Unlock()

	if len(v.History) == 0 {
		return false
	}
	v.Position = v.History[len(v.History)-1]
	v.History = v.History[:len(v.History)-1]
	v.Selected = 0
	return true
}

////////// DRAWING

// DrawText displays the text string at the given (x1, y1) with box size (x2, y2)
func (v *View) DrawText(x1, y1, x2, y2 int, text string) {
	style := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorLightSteelBlue)
	v.drawStyledText(x1, y1, x2, y2, text, style)
}

func (v *View) drawStyledText(x1, y1, x2, y2 int, text string, style tcell.Style) {
	row := y1
	col := x1
	for _, r := range text {
		v.Screen.SetContent(col, row, r, nil, style)
		col++
		if col >= x2 {
			row++
			col = x1
		}
		if row > y2 {
			break
		}
	}
}

// DrawViewBorder displays the outline of the View
func (v *View) DrawViewBorder(width, height int) {
	hvStyle := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorPink)
	v.Screen.SetContent(0, 0, tcell.RuneULCorner, nil, hvStyle)
	for i := 1; i < width; i++ {
		v.Screen.SetContent(i, 0, tcell.RuneHLine, nil, hvStyle)
		v.Screen.SetContent(i, height, tcell.RuneHLine, nil, hvStyle)
	}
	v.Screen.SetContent(width, 0, tcell.RuneURCorner, nil, hvStyle)

	for i := 1; i < height; i++ {
		v.Screen.SetContent(0, i, tcell.RuneVLine, nil, hvStyle)
		v.Screen.SetContent(width, i, tcell.RuneVLine, nil, hvStyle)
	}

	v.Screen.SetContent(0, height, tcell.RuneLLCorner, nil, hvStyle)
	v.Screen.SetContent(width, height, tcell.RuneLRCorner, nil, hvStyle)
}

// OptionLabel is one line of the option list
func OptionLabel(r Kt.PictographRecord, lc *Ks.LetterClassifier) string {
	label := fmt.Sprintf("%-3s → %-8s %s", r.Letter, r.EndPosition, lc.CategoryOf(r.Letter).Type)
	for _, h := range Kt.Hands {
		m, ok := r.Motions[h]
		if !ok {
			continue
		}
		label += fmt.Sprintf("  %s:%s %s→%s", h, m.MotionType, m.StartLoc, m.EndLoc)
		if rm, ok := r.Resolved[h]; ok {
			label += " " + rm.EndOrientation.String()
		}
	}
	return label
}

// DrawBrowser draws the position header, the option list
// and the compass grid of the highlighted option
func (v *View) DrawBrowser() {
	width, height := v.GetScreenSize()
	svc, position, selected, depth := v.browserState()

	v.DrawViewBorder(width-2, height-1)

	opts := svc.NextOptions(position)
	v.DrawText(2, 1, width-4, 1,
		fmt.Sprintf("Position: %s   options: %d   depth: %d", position, len(opts), depth))

	if len(opts) == 0 {
		v.DrawText(2, screenGutter, width-4, screenGutter, "no pictographs start here")
	}

	listX := 2
	gridX := width - (gridRadius*2+4)*2
	if gridX < width/2 {
		gridX = width / 2
	}

	normal := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorLightSteelBlue)
	highlight := tcell.StyleDefault.Background(tcell.ColorDarkSlateBlue).Foreground(tcell.ColorWhite)
	for i, o := range opts {
		y := screenGutter + i
		if y >= height-2 {
			break
		}
		style := normal
		if i == selected {
			style = highlight
		}
		v.drawStyledText(listX, y, gridX-2, y, OptionLabel(o, svc.Letters), style)
	}

	var current *Kt.PictographRecord
	if selected >= 0 && selected < len(opts) {
		current = &opts[selected]
	}
	v.DrawGrid(gridX+gridRadius*2+2, screenGutter+gridRadius+1, gridRadius, current)

	v.DrawText(1, height-1, width, height+10, "/↑↓/ select | /Enter/ advance | /⌫/ back | /r/ reload | /ESC/ to quit")
	v.DrawText(width-10, height-1, width, height+10, "KINETIC")
}

// GetScreenSize provides the terminal size for drawing
func (v *View) GetScreenSize() (int, int) {
	width, height := v.Screen.Size()
	return width, height
}

// ResizeScreen redraws after terminal changes
func (v *View) ResizeScreen() {
	v.Screen.Sync()
	v.UpdateScreen()
}

func (v *View) UpdateScreen() {
	v.Screen.Clear()
	v.DrawBrowser()
	v.Screen.Show()
}

// HandleKey applies one key press, false means quit
func (v *View) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		v.SelectPrev()
	case tcell.KeyDown:
		v.SelectNext()
	case tcell.KeyEnter:
		v.Advance()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		v.Back()
	case tcell.KeyCtrlL:
		v.Screen.Sync()
	case tcell.KeyRune:
		if ev.Rune() == 'r' || ev.Rune() == 'R' {
			if err := v.Reload(context.Background()); err != nil {
				slog.Error("Manual reload failed", slog.Any("error", err))
			}
		}
	}
	return true
}

// Running Loop to handle events, returns on quit
func (v *View) handleKeyBoardEvent() {
	defer func() {
		if r := recover(); r != nil {
			v.Screen.Fini()
			slog.Error("Panic in event loop", slog.Any("panic", r))
			slog.Error("Recovered from panic", slog.String("stack", string(debug.Stack())))
			panic(r)
		}
	}()

	for {
		ev := v.Screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			v.ResizeScreen()
		case *tcell.EventKey:
			if !v.HandleKey(ev) {
				v.Screen.Fini()
				return
			}
			v.UpdateScreen()
		}
	}
}

// RespWriter is a wrapper with StatsMiddleware, used for Prometheus
type RespWriter struct {
	http.ResponseWriter
	Status int
}

// WriteHeader is a helper for StatsMiddleware, used for Prometheus
func (w *RespWriter) WriteHeader(status int) {
	w.Status = status
	w.ResponseWriter.WriteHeader(status)
}

// Write is a helper for StatsMiddleware, used for Prometheus
func (w *RespWriter) Write(b []byte) (int, error) {
	return w.ResponseWriter.Write(b)
}

func (v *View) StatsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := &RespWriter{
			ResponseWriter: w,
			Status:         200,
		}
		next.ServeHTTP(wrapped, r)
		v.Stats.RecWWW(strconv.Itoa(wrapped.Status), r.Method)
	})
}

// NewView builds the View and loads the dataset once.
// The screen is attached separately so the web-only mode can skip it.
func NewView(src Kp.DatasetSource, lc *Ks.LetterClassifier, start string) (*View, error) {
	if src == nil {
		slog.Error("Could not get a dataset source for display")
		return nil, errors.New("dataset source not found")
	}

	view := &View{
		Source:   src,
		Letters:  lc,
		Stats:    Ko.NewStatsInternal(),
		Position: start,
		Service:  Ks.NewService(nil, lc),
	}

	if err := view.Reload(context.Background()); err != nil {
		return nil, err
	}

	return view, nil
}

// AttachScreen initializes tcell on s and draws the first frame
func (v *View) AttachScreen(s tcell.Screen) error {
	if err := s.Init(); err != nil {
		slog.Error("Could not initialize screen", slog.Any("Error", err))
		return err
	}

	defStyle := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorPink)
	s.SetStyle(defStyle)

	v.Screen = s
	v.UpdateScreen()
	return nil
}

// newServer wraps the router for tracing
func (v *View) newServer(addr string) *http.Server {
	return &http.Server{
		Addr:    addr,
		Handler: otelhttp.NewHandler(v.SetupMux(), "kinetic"),
	}
}

// viewFromConfig resolves the source and letter table named by c
func viewFromConfig(c *Ks.ConfigFile) (*View, error) {
	src, err := Kp.SourceLookup(c.Source)
	if err != nil {
		slog.Error("Failed to init dataset source", slog.Any("Error", err))
		return nil, err
	}

	var lc *Ks.LetterClassifier
	if c.LetterTable != "" {
		lc, err = Kp.LoadLetterTable(c.LetterTable)
		if err != nil {
			src.Close()
			slog.Error("Failed to load letter table", slog.Any("Error", err))
			return nil, err
		}
	}

	view, err := NewView(src, lc, c.StartPosition)
	if err != nil {
		src.Close()
		return nil, err
	}
	return view, nil
}

// StartBrowserWithConfig is called by main to run the program.
// This also starts up the API and /metrics endpoint.
func StartBrowserWithConfig(c *Ks.ConfigFile) error {
	view, err := viewFromConfig(c)
	if err != nil {
		return err
	}
	defer view.Source.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		slog.Error("Could not get new screen", slog.Any("Error", err))
		return err
	}
	if err := view.AttachScreen(screen); err != nil {
		return err
	}

	view.server = view.newServer(c.Addr)

	if c.RefreshSeconds > 0 {
		ps := view.NewRefreshSupervisor(time.Duration(c.RefreshSeconds) * time.Second)
		ps.Start()
		defer ps.Stop()
	}

	go func() {
		slog.Info("Starting Kinetic API endpoint...", slog.String("Port", c.Addr))
		if err := view.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not start API endpoint", slog.Any("Error", err))
		}
	}()

	view.handleKeyBoardEvent()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return view.server.Shutdown(ctx)
}

// StartWebNoTUI serves the API without a terminal, blocking
func StartWebNoTUI(c *Ks.ConfigFile) error {
	view, err := viewFromConfig(c)
	if err != nil {
		return err
	}
	defer view.Source.Close()

	view.server = view.newServer(c.Addr)

	if c.RefreshSeconds > 0 {
		ps := view.NewRefreshSupervisor(time.Duration(c.RefreshSeconds) * time.Second)
		ps.Start()
		defer ps.Stop()
	}

	slog.Info("Starting Kinetic web server...", slog.String("Port", c.Addr))
	if err := view.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Could not start API endpoint", slog.Any("Error", err))
		return err
	}

	return nil
}
