package room

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrTableNotFound is returned when no open table has the requested UUID
var ErrTableNotFound = errors.New("table not found")

// PitBoss keeps track of every open table
type PitBoss struct {
	dealers map[string]*Dealer
	lock    sync.RWMutex
}

// NewPitBoss returns a new dispatch object
func NewPitBoss() *PitBoss {
	return &PitBoss{
		dealers: make(map[string]*Dealer),
	}
}

// OpenTable seats the players at a new table and deals the first hand
func (p *PitBoss) OpenTable(cfg TableConfig) (*Dealer, error) {
	dealer, err := NewDealer(uuid.New().String(), cfg)
	if err != nil {
		return nil, err
	}

	p.lock.Lock()
	p.dealers[dealer.UUID] = dealer
	p.lock.Unlock()

	dealer.StartShift()
	logrus.WithField("uuid", dealer.UUID).WithField("seats", len(cfg.Seats)).Info("opened table")

	return dealer, nil
}

// Dealer returns the dealer running the table
func (p *PitBoss) Dealer(tableUUID string) (*Dealer, error) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	dealer, ok := p.dealers[tableUUID]
	if !ok {
		return nil, ErrTableNotFound
	}

	return dealer, nil
}

// Dealers returns every open table ordered by UUID
func (p *PitBoss) Dealers() []*Dealer {
	p.lock.RLock()
	dealers := make([]*Dealer, 0, len(p.dealers))
	for _, dealer := range p.dealers {
		dealers = append(dealers, dealer)
	}
	p.lock.RUnlock()

	sort.Slice(dealers, func(i, j int) bool {
		return dealers[i].UUID < dealers[j].UUID
	})

	return dealers
}

// CloseTable stops the table and forgets about it
func (p *PitBoss) CloseTable(tableUUID string) error {
	p.lock.Lock()
	dealer, ok := p.dealers[tableUUID]
	delete(p.dealers, tableUUID)
	p.lock.Unlock()

	if !ok {
		return ErrTableNotFound
	}

	dealer.EndShift()
	logrus.WithField("uuid", tableUUID).Info("closed table")
	return nil
}

// EndShift closes every table
func (p *PitBoss) EndShift() {
	for _, dealer := range p.Dealers() {
		_ = p.CloseTable(dealer.UUID)
	}
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) error {
	dealer, err := p.Dealer(client.tableUUID)
	if err != nil {
		return err
	}

	logrus.WithField("client", client.String()).Debug("client connected")
	dealer.AddClient(client)
	return nil
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	logrus.WithField("client", client.String()).Debug("client disconnected")

	dealer, err := p.Dealer(client.tableUUID)
	if err != nil {
		// the table was closed first
		return
	}

	dealer.RemoveClient(client)
}
