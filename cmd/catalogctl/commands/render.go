package commands

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/iconplus/catalog/internal/client"
	"github.com/iconplus/catalog/internal/core/dto"
)

func renderFailure(w io.Writer, envelope client.Envelope) {
	fmt.Fprintf(w, "error: %s\n", envelope.Message)
	if envelope.Error != "" {
		fmt.Fprintf(w, "  %s\n", envelope.Error)
	}
}

func renderCollection(w io.Writer, backend client.Backend, envelope client.Envelope) {
	if !envelope.Success {
		renderFailure(w, envelope)
		return
	}
	products, err := envelope.Products()
	if err != nil {
		fmt.Fprintf(w, "error: unreadable product list from %s API: %v\n", backend.Name, err)
		return
	}

	fmt.Fprintf(w, "%s API: %s (%d)\n\n", backend.Name, envelope.Message, len(products))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tQTY")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Category, formatPrice(p.Price), p.Quantity)
	}
	_ = tw.Flush()
}

func renderProduct(w io.Writer, backend client.Backend, envelope client.Envelope) {
	if !envelope.Success {
		renderFailure(w, envelope)
		return
	}
	p, err := envelope.Product()
	if err != nil {
		fmt.Fprintf(w, "error: unreadable product from %s API: %v\n", backend.Name, err)
		return
	}

	fmt.Fprintf(w, "%s API: %s\n\n", backend.Name, envelope.Message)
	writeProduct(w, p)
}

func writeProduct(w io.Writer, p dto.ProductResponse) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "id\t%d\n", p.ID)
	fmt.Fprintf(tw, "name\t%s\n", p.Name)
	fmt.Fprintf(tw, "description\t%s\n", p.Description)
	fmt.Fprintf(tw, "price\t%s\n", formatPrice(p.Price))
	fmt.Fprintf(tw, "quantity\t%d\n", p.Quantity)
	fmt.Fprintf(tw, "category\t%s\n", p.Category)
	_ = tw.Flush()
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}
