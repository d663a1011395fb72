package main

// @title           Farmácia POS API
// @version         1.0
// @description     API do retaguarda de farmácia: vendas, estoque, créditos de clientes e extratos

// @contact.name   API Support
// @contact.email  suporte@farmacia-pos.com.br

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BranchID
// @in header
// @name branch-id
// @description Identificador da filial dona dos dados da requisição
