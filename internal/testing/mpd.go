package testing

import (
	"bufio"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// MPDServer speaks enough of the MPD text protocol for the commands yap sends.
type MPDServer struct {
	Addr string

	mu       sync.Mutex
	ln       net.Listener
	state    string
	random   bool
	repeat   bool
	elapsed  float64
	duration float64
	queue    []mpdEntry
	pos      int
	nextID   int
	commands []string
	fail     map[string]string
	password string
}

type mpdEntry struct {
	id   int
	file string
}

// NewMPDServer listens on a loopback port until the test ends.
func NewMPDServer(t *testing.T) *MPDServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	s := &MPDServer{Addr: ln.Addr().String(), ln: ln, state: "stop", pos: -1, nextID: 1, fail: map[string]string{}}
	go s.serve()
	t.Cleanup(func() { ln.Close() })
	return s
}

// RequirePassword makes the server reject commands until "password <pw>" is sent.
func (s *MPDServer) RequirePassword(pw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.password = pw
}

// FailCommand makes every later use of verb answer with an ACK.
func (s *MPDServer) FailCommand(verb string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[verb] = "[50@0] {" + verb + "} injected failure"
}

// Load replaces the queue with files and starts playing the first one.
func (s *MPDServer) Load(elapsed, duration float64, files ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = nil
	for _, f := range files {
		s.queue = append(s.queue, mpdEntry{id: s.nextID, file: f})
		s.nextID++
	}
	s.pos, s.state = 0, "play"
	s.elapsed, s.duration = elapsed, duration
}

// Commands returns the verbs received so far, in order.
func (s *MPDServer) Commands() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.commands...)
}

func (s *MPDServer) Files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	files := make([]string, 0, len(s.queue))
	for _, e := range s.queue {
		files = append(files, e.file)
	}
	return files
}

func (s *MPDServer) State() (state string, random, repeat bool, elapsed float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.random, s.repeat, s.elapsed
}

func (s *MPDServer) serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		go s.handle(conn)
	}
}

func (s *MPDServer) handle(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(10 * time.Second))

	w := bufio.NewWriter(conn)
	fmt.Fprint(w, "OK MPD 0.23.5\n")
	w.Flush()

	authed := false
	r := bufio.NewScanner(conn)
	for r.Scan() {
		verb, args := splitCommand(r.Text())
		if verb == "close" {
			return
		}

		s.mu.Lock()
		s.commands = append(s.commands, verb)
		var reply string
		var err error
		switch {
		case s.fail[verb] != "":
			err = fmt.Errorf("%s", s.fail[verb])
		case verb == "password":
			if len(args) == 1 && args[0] == s.password {
				authed = true
			} else {
				err = fmt.Errorf("[3@0] {password} incorrect password")
			}
		case s.password != "" && !authed:
			err = fmt.Errorf("[4@0] {%s} you don't have permission for \"%s\"", verb, verb)
		default:
			reply, err = s.exec(verb, args)
		}
		s.mu.Unlock()

		if err != nil {
			fmt.Fprintf(w, "ACK %v\n", err)
		} else {
			fmt.Fprintf(w, "%sOK\n", reply)
		}
		w.Flush()
	}
}

// exec runs one command with s.mu held.
func (s *MPDServer) exec(verb string, args []string) (string, error) {
	var b strings.Builder
	switch verb {
	case "ping", "clearerror":
	case "status":
		fmt.Fprintf(&b, "repeat: %s\nrandom: %s\nplaylistlength: %d\nstate: %s\n",
			bit(s.repeat), bit(s.random), len(s.queue), s.state)
		if s.pos >= 0 && s.state != "stop" {
			fmt.Fprintf(&b, "song: %d\nsongid: %d\nelapsed: %.3f\nduration: %.3f\n",
				s.pos, s.queue[s.pos].id, s.elapsed, s.duration)
		}
	case "currentsong":
		if s.pos >= 0 && s.pos < len(s.queue) {
			e := s.queue[s.pos]
			fmt.Fprintf(&b, "file: %s\nPos: %d\nId: %d\n", e.file, s.pos, e.id)
		}
	case "playlistinfo":
		for i, e := range s.queue {
			fmt.Fprintf(&b, "file: %s\nPos: %d\nId: %d\n", e.file, i, e.id)
		}
	case "update":
		b.WriteString("updating_db: 1\n")
	case "add":
		if len(args) != 1 {
			return "", fmt.Errorf("[2@0] {add} wrong number of arguments")
		}
		s.queue = append(s.queue, mpdEntry{id: s.nextID, file: args[0]})
		s.nextID++
	case "clear":
		s.queue, s.pos, s.state = nil, -1, "stop"
	case "play":
		if len(s.queue) > 0 {
			if s.pos < 0 {
				s.pos = 0
			}
			s.state = "play"
		}
	case "pause":
		if s.state == "stop" {
			break
		}
		if len(args) == 1 && args[0] == "1" {
			s.state = "pause"
		} else {
			s.state = "play"
		}
	case "random":
		s.random = len(args) == 1 && args[0] == "1"
	case "repeat":
		s.repeat = len(args) == 1 && args[0] == "1"
	case "next":
		if s.pos+1 < len(s.queue) {
			s.pos++
		} else {
			s.pos, s.state = -1, "stop"
		}
	case "previous":
		if s.pos > 0 {
			s.pos--
		}
	case "shuffle":
		for i, j := 0, len(s.queue)-1; i < j; i, j = i+1, j-1 {
			s.queue[i], s.queue[j] = s.queue[j], s.queue[i]
		}
	case "seekcur":
		if len(args) != 1 || s.pos < 0 {
			return "", fmt.Errorf("[55@0] {seekcur} Not playing")
		}
		f, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return "", fmt.Errorf("[2@0] {seekcur} bad time %q", args[0])
		}
		s.elapsed = f
	case "deleteid":
		id, _ := strconv.Atoi(strings.Join(args, ""))
		for i, e := range s.queue {
			if e.id == id {
				s.queue = append(s.queue[:i], s.queue[i+1:]...)
				if s.pos >= len(s.queue) {
					s.pos = len(s.queue) - 1
				}
				return "", nil
			}
		}
		return "", fmt.Errorf("[50@0] {deleteid} No such song")
	default:
		return "", fmt.Errorf("[5@0] {} unknown command \"%s\"", verb)
	}
	return b.String(), nil
}

// splitCommand tokenizes a request line, honouring double quotes and backslash escapes.
func splitCommand(line string) (string, []string) {
	var tokens []string
	var cur strings.Builder
	quoted, escaped, started := false, false, false

	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quoted:
			escaped = true
		case r == '"':
			quoted = !quoted
			started = true
		case r == ' ' && !quoted:
			if started {
				tokens = append(tokens, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if started {
		tokens = append(tokens, cur.String())
	}

	if len(tokens) == 0 {
		return "", nil
	}
	return tokens[0], tokens[1:]
}

func bit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
