//Package notify is the boundary to the host notification facility
package notify

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"
)

//Greeting is the message sent by Greet
const Greeting = "This is a game of life"

//Notifier delivers a message to the host, fire and forget
type Notifier interface {
	Notify(message string)
}

//NotifierFunc adapts a plain function to Notifier
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

//Greet sends the greeting to the notifier
func Greet(n Notifier) {
	n.Notify(Greeting)
}

//WriterNotifier prints the messages as highlighted lines
type WriterNotifier struct {
	w  io.Writer
	au aurora.Aurora
}

func NewWriterNotifier(w io.Writer, colors bool) *WriterNotifier {
	return &WriterNotifier{w: w, au: aurora.NewAurora(colors)}
}

//Notify writes the message, write errors are ignored
func (n *WriterNotifier) Notify(message string) {
	_, _ = fmt.Fprintln(n.w, n.au.Bold(n.au.Yellow("[!] "+message)))
}
