package auth_test

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jonwraymond/jugsolver/auth"
)

func ExampleNew() {
	secret := []byte("example-secret-example-secret!!")
	authn, err := auth.New(auth.Settings{
		Mode:    auth.ModeAny,
		APIKeys: "ops=k-123",
		JWT:     auth.JWTConfig{Secret: secret},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	token, _ := auth.SignToken(secret, auth.TokenSpec{Subject: "alice", TTL: time.Minute}, time.Now())
	h := http.Header{}
	h.Set("Authorization", "Bearer "+token)

	res, _ := authn.Authenticate(context.Background(), &auth.Request{Headers: h})
	fmt.Println(res.Authenticated, res.Identity.Principal)
	// Output:
	// true alice
}
