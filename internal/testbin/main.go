// Command testbin is a minimal debugger-like fixture for testing the
// screencheck package.
//
// Modes (first argument):
//   - hello: prints "Hello", waits for 'q' with echo disabled, exits 0
//   - jard: draws a framed "Jard" panel and a "jard >> " prompt. Each line
//     typed at the prompt is appended to the panel; "exit" quits.
//   - size: prints the terminal size and waits for 'q'
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

func main() {
	mode := "hello"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	switch mode {
	case "hello":
		fmt.Println("Hello")
		waitForQuit()
	case "jard":
		runJard()
	case "size":
		cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			fmt.Printf("size: error: %v\n", err)
		} else {
			fmt.Printf("size: %dx%d\n", cols, rows)
		}
		waitForQuit()
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", mode)
		os.Exit(2)
	}
}

// waitForQuit reads raw input until 'q'. Raw mode keeps typed keys off the
// screen.
func waitForQuit() {
	fd := int(os.Stdin.Fd())
	if state, err := term.MakeRaw(fd); err == nil {
		defer term.Restore(fd, state)
	}
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return
		}
		if n == 1 && buf[0] == 'q' {
			return
		}
	}
}

const panelWidth = 30

func runJard() {
	var history []string
	draw(history)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input == "exit" {
			return
		}
		if input != "" {
			history = append(history, input)
		}
		draw(history)
	}
}

// draw clears the screen and renders the panel followed by the prompt.
func draw(history []string) {
	var b strings.Builder
	b.WriteString("\x1b[H\x1b[2J")

	title := "─ Jard "
	b.WriteString("┌" + title + strings.Repeat("─", panelWidth-2-len([]rune(title))) + "┐\n")
	row := func(s string) {
		b.WriteString("│" + s + strings.Repeat(" ", panelWidth-2-len([]rune(s))) + "│\n")
	}
	row(" step 1")
	row("")
	for _, h := range history {
		row(" > " + h)
	}
	b.WriteString("└" + strings.Repeat("─", panelWidth-2) + "┘\n")
	b.WriteString("jard >> ")
	fmt.Print(b.String())
}
