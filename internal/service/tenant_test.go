package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/techmidia/painel/internal/apiclient"
	"github.com/techmidia/painel/internal/domain/tenant"
	apperrors "github.com/techmidia/painel/internal/errors"
)

const savedConfig = `{"nome_empresa":"Acme","cor_primaria":"#112233","cor_sucesso":"#00ff00","cor_perigo":"#ff0000","logo_path":"uploads/logo_1.png"}`

func validInput() SaveInput {
	return SaveInput{
		NomeEmpresa: "Acme",
		CorPrimaria: "#112233",
		CorSucesso:  "#00FF00",
		CorPerigo:   "#ff0000",
	}
}

func TestTenantService_Save_WithoutLogo(t *testing.T) {
	backend := newBackend(t)
	svc := NewTenantService(TenantServiceOptions{Backend: backend})

	backend.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	backend.EXPECT().
		Put(gomock.Any(), gomock.Any(), "/configuracao", configUpdate{
			NomeEmpresa: "Acme",
			CorPrimaria: "#112233",
			CorSucesso:  "#00ff00",
			CorPerigo:   "#ff0000",
		}, gomock.Any()).
		DoAndReturn(sendJSON(savedConfig)).
		Times(1)

	cfg, err := svc.Save(context.Background(), apiclient.Credentials{}, validInput())
	require.NoError(t, err)
	assert.Equal(t, "Acme", cfg.NomeEmpresa)
	assert.Equal(t, "uploads/logo_1.png", cfg.LogoPath)
}

func TestTenantService_Save_WithLogo(t *testing.T) {
	backend := newBackend(t)
	svc := NewTenantService(TenantServiceOptions{Backend: backend})

	in := validInput()
	in.Logo = &LogoUpload{Name: "marca.PNG", Content: strings.NewReader("png-bytes")}

	gomock.InOrder(
		backend.EXPECT().
			Upload(gomock.Any(), gomock.Any(), "/upload/logo", gomock.Any(), nil).
			DoAndReturn(func(_ context.Context, _ apiclient.Credentials, _ string, f apiclient.File, _ any) error {
				assert.Equal(t, "file", f.Field)
				assert.Equal(t, "marca.PNG", f.Name)
				return nil
			}),
		backend.EXPECT().
			Put(gomock.Any(), gomock.Any(), "/configuracao", gomock.Any(), gomock.Any()).
			DoAndReturn(sendJSON(savedConfig)),
	)

	_, err := svc.Save(context.Background(), apiclient.Credentials{}, in)
	require.NoError(t, err)
}

func TestTenantService_Save_UploadFailureSkipsUpdate(t *testing.T) {
	backend := newBackend(t)
	svc := NewTenantService(TenantServiceOptions{Backend: backend})

	in := validInput()
	in.Logo = &LogoUpload{Name: "logo.svg", Content: strings.NewReader("<svg/>")}

	backend.EXPECT().
		Upload(gomock.Any(), gomock.Any(), "/upload/logo", gomock.Any(), nil).
		Return(apperrors.Validation("Arquivo muito grande"))
	backend.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Save(context.Background(), apiclient.Credentials{}, in)
	require.Error(t, err)
	assert.Equal(t, "Erro no upload do logo", apperrors.UserMessage(err, ""))
	assert.True(t, apperrors.IsValidation(err))
}

func TestTenantService_Save_Validation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*SaveInput)
		wantField string
		wantMsg   string
	}{
		{
			name:      "bad extension",
			mutate:    func(in *SaveInput) { in.Logo = &LogoUpload{Name: "logo.exe", Content: strings.NewReader("")} },
			wantField: "logo",
			wantMsg:   "Tipo de arquivo não permitido",
		},
		{
			name:      "bad color",
			mutate:    func(in *SaveInput) { in.CorSucesso = "green" },
			wantField: "cor_sucesso",
			wantMsg:   "Cor inválida",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newBackend(t)
			svc := NewTenantService(TenantServiceOptions{Backend: backend})

			in := validInput()
			tt.mutate(&in)

			_, err := svc.Save(context.Background(), apiclient.Credentials{}, in)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, tt.wantField, apperrors.GetField(err))
			assert.Equal(t, tt.wantMsg, apperrors.UserMessage(err, ""))
		})
	}
}

func TestTenantService_DefaultColors(t *testing.T) {
	svc := NewTenantService(TenantServiceOptions{Backend: newBackend(t)})
	cfg := svc.DefaultColors()

	assert.Equal(t, "#007bff", cfg.CorPrimaria)
	assert.Equal(t, "#28a745", cfg.CorSucesso)
	assert.Equal(t, "#dc3545", cfg.CorPerigo)
}

func TestAllowedLogo(t *testing.T) {
	for _, name := range []string{"a.png", "a.JPG", "a.jpeg", "a.gif", "a.svg"} {
		assert.True(t, AllowedLogo(name), name)
	}
	for _, name := range []string{"a.webp", "png", "", "a.png.exe"} {
		assert.False(t, AllowedLogo(name), name)
	}
}

func TestTenantService_Load(t *testing.T) {
	backend := newBackend(t)
	svc := NewTenantService(TenantServiceOptions{Backend: backend})

	backend.EXPECT().
		Get(gomock.Any(), gomock.Any(), "/configuracao", gomock.Nil(), gomock.Any()).
		DoAndReturn(getJSON(`{"nome_empresa":""}`))

	cfg, err := svc.Load(context.Background(), apiclient.Credentials{})
	require.NoError(t, err)
	assert.Equal(t, tenant.DefaultName, cfg.NomeEmpresa)
}
