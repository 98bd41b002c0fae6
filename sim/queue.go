// Implements the StationQueue, which holds all passengers waiting at a station.
// Passengers are enqueued on spawn and leave in spawn order.

package sim

import (
	"fmt"
	"strings"
)

// StationQueue is a FIFO queue of passengers waiting on a platform.
type StationQueue struct {
	queue []*Passenger
}

// Enqueue adds a passenger to the back of the queue.
func (q *StationQueue) Enqueue(p *Passenger) {
	if p == nil {
		panic("Enqueue: passenger must not be nil")
	}
	q.queue = append(q.queue, p)
}

func (q *StationQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range q.queue {
		sb.WriteString(fmt.Sprint(val))
		if i < len(q.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of passengers in the queue.
func (q *StationQueue) Len() int {
	return len(q.queue)
}

// Peek returns the passenger at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (q *StationQueue) Peek() *Passenger {
	if len(q.queue) == 0 {
		return nil
	}
	return q.queue[0]
}

// Dequeue removes and returns the passenger at the front of the queue.
// Returns nil if the queue is empty.
func (q *StationQueue) Dequeue() *Passenger {
	if len(q.queue) == 0 {
		return nil
	}
	p := q.queue[0]
	q.queue[0] = nil
	q.queue = q.queue[1:]
	return p
}
