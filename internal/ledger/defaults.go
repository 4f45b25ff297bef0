package ledger

import "time"

// DefaultProducts returns the compiled-in product catalog.
func DefaultProducts() []Product {
	return []Product{
		{ID: "p-1", Name: "Consultoria Financeira Essencial", Category: "Consultoria", Price: 1290},
		{ID: "p-2", Name: "Mentoria Premium", Category: "Mentoria", Price: 2490},
		{ID: "p-3", Name: "Planejamento Fiscal Anual", Category: "Planejamento", Price: 1890},
		{ID: "p-4", Name: "Workshop Educação Financeira", Category: "Treinamento", Price: 890},
	}
}

// DefaultClients returns the built-in client set used when the store holds
// no usable value.
func DefaultClients() []Client {
	return []Client{
		{
			ID: "c-1", Name: "Marcelo Geronimo da Silva Nascimento",
			Email: "marcelo.nascimento@email.com", Phone: "(11) 91234-5678",
			Document: "123.456.789-00", Origin: "Indicação",
			BirthDate:   date(1987, 3, 12),
			AccountLink: "https://instagram.com/marcelo",
			CreatedAt:   time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC),
		},
		{
			ID: "c-2", Name: "Ana Paula Soares de Oliveira",
			Email: "ana.soares@email.com", Phone: "(21) 99876-5432",
			Document: "987.654.321-00", Origin: "Evento",
			BirthDate:   date(1990, 8, 25),
			AccountLink: "https://linkedin.com/in/anapaula",
			CreatedAt:   time.Date(2024, 2, 15, 15, 30, 0, 0, time.UTC),
		},
		{
			ID: "c-3", Name: "Pedro Lucas da Silva",
			Email: "pedro.lucas@email.com", Phone: "(31) 91111-2233",
			Document: "321.654.987-00", Origin: "Campanha Digital",
			BirthDate:   date(1995, 11, 2),
			AccountLink: "https://facebook.com/pedrolucas",
			CreatedAt:   time.Date(2024, 3, 21, 9, 45, 0, 0, time.UTC),
		},
		{
			ID: "c-4", Name: "Giovana Ferreira",
			Email: "giovana.ferreira@email.com", Phone: "(47) 97777-8899",
			Document: "222.333.444-55", Origin: "Orgânico",
			BirthDate:   date(1989, 5, 8),
			AccountLink: "https://instagram.com/giovana",
			CreatedAt:   time.Date(2024, 4, 12, 11, 20, 0, 0, time.UTC),
		},
		{
			ID: "c-5", Name: "Cristian Lucas De Sousa",
			Email: "cristian.sousa@email.com", Phone: "(62) 93333-4455",
			Document: "789.123.456-77", Origin: "Parceria",
			BirthDate:   date(1992, 1, 17),
			AccountLink: "https://instagram.com/cristian",
			CreatedAt:   time.Date(2024, 5, 5, 16, 5, 0, 0, time.UTC),
		},
	}
}

// DefaultSales returns the built-in sale set with totals derived from the
// default catalog, matching what the store computes on a fresh write.
func DefaultSales() []Sale {
	products := DefaultProducts()
	seed := func(id, collaboratorID, clientID, productID string, quantity int, pct, flat float64, payment, observation string, day time.Time) Sale {
		s := Sale{
			ID:                 id,
			CollaboratorID:     collaboratorID,
			ClientID:           clientID,
			ProductID:          productID,
			Quantity:           quantity,
			DiscountPercentage: pct,
			DiscountValue:      flat,
			PaymentMethod:      payment,
			Observation:        observation,
			Date:               day,
		}
		s.Subtotal, s.Total = ComputeTotals(s.ProductID, s.Quantity, s.DiscountPercentage, s.DiscountValue, products)
		return s
	}
	return []Sale{
		seed("s-1", "u-sales-1", "c-1", "p-2", 1, 5, 0, "Cartão de Crédito", "Renovação anual", time.Date(2024, 5, 18, 0, 0, 0, 0, time.UTC)),
		seed("s-2", "u-manager", "c-2", "p-1", 1, 0, 150, "Pix", "Pacote customizado", time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)),
		seed("s-3", "u-sales-1", "c-3", "p-4", 3, 0, 0, "Boleto", "Treinamento corporativo", time.Date(2024, 7, 22, 0, 0, 0, 0, time.UTC)),
		seed("s-4", "u-manager", "c-4", "p-3", 2, 10, 0, "Transferência", "Projeto de expansão", time.Date(2024, 8, 11, 0, 0, 0, 0, time.UTC)),
		seed("s-5", "u-analyst", "c-5", "p-2", 1, 0, 0, "Cartão de Crédito", "Upgrade de plano", time.Date(2024, 9, 5, 0, 0, 0, 0, time.UTC)),
		seed("s-6", "u-sales-1", "c-1", "p-1", 1, 0, 0, "Pix", "Onboarding consultoria", time.Date(2024, 10, 13, 0, 0, 0, 0, time.UTC)),
	}
}

// DefaultExpenses returns the built-in expense set.
func DefaultExpenses() []Expense {
	return []Expense{
		{
			ID: "e-1", Date: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
			Classification: "Marketing", Description: "Campanha redes sociais",
			Value: 3200, CreatedAt: time.Date(2024, 5, 20, 14, 0, 0, 0, time.UTC),
		},
		{
			ID: "e-2", Date: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
			Classification: "Operacional", Description: "Assinaturas de softwares",
			Value: 890, CreatedAt: time.Date(2024, 6, 10, 9, 15, 0, 0, time.UTC),
		},
		{
			ID: "e-3", Date: time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC),
			Classification: "Comissão", Description: "Bonificação equipe comercial",
			Value: 5400, CreatedAt: time.Date(2024, 7, 5, 18, 22, 0, 0, time.UTC),
		},
		{
			ID: "e-4", Date: time.Date(2024, 8, 18, 0, 0, 0, 0, time.UTC),
			Classification: "Eventos", Description: "Organização workshop clientes",
			Value: 2500, CreatedAt: time.Date(2024, 8, 18, 11, 40, 0, 0, time.UTC),
		},
	}
}

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
