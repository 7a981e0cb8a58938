package client

import (
	"context"
	"sync"

	"github.com/raywall/terraform-provider-logstream/pkg/types"
)

// Factory constrói um AWSClient. Substituível nos testes.
type Factory func(ctx context.Context, region, profile string) (*AWSClient, error)

// Pool mantém um AWSClient por scope. O profile de cada stage vem do projeto.
type Pool struct {
	New      Factory
	Profiles map[string]string

	mu      sync.Mutex
	clients map[types.Scope]*AWSClient
}

// NewPool cria um Pool que usa New e os profiles por stage informados.
func NewPool(profiles map[string]string) *Pool {
	return &Pool{New: New, Profiles: profiles}
}

// Client devolve o cliente do scope, criando-o na primeira chamada.
func (p *Pool) Client(ctx context.Context, scope types.Scope) (*AWSClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.clients[scope]; ok {
		return c, nil
	}
	factory := p.New
	if factory == nil {
		factory = New
	}
	c, err := factory(ctx, scope.Region, p.Profiles[scope.Stage])
	if err != nil {
		return nil, err
	}
	if p.clients == nil {
		p.clients = make(map[types.Scope]*AWSClient)
	}
	p.clients[scope] = c
	return c, nil
}

// Static é um provedor que devolve sempre o mesmo cliente.
type Static struct {
	C *AWSClient
}

// Client implementa o provedor de clientes para um único cliente pré-construído.
func (s Static) Client(context.Context, types.Scope) (*AWSClient, error) {
	return s.C, nil
}
