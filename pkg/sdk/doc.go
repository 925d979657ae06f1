// Package faqdex embeds the faqdex FAQ answering engine in a Go program.
//
// The client ranks a fixed FAQ collection by keyword overlap and answers
// with the best match plus citations, or a not-found answer with
// suggestions. Documents come from the built-in sample, a JSON file, raw
// JSON bytes or a Redis key.
//
//	client, _ := faqdex.New(ctx, faqdex.WithFile("data/faq.json"))
//	defer client.Close()
//
//	ans, _ := client.Ask(ctx, "환불은 언제까지 가능한가요?")
//	fmt.Println(ans.Text)
//	for _, c := range ans.Citations {
//	    fmt.Println(c.ID, c.Score)
//	}
package faqdex
